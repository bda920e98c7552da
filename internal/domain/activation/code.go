// Package activation implements the offline OJA activation code scheme.
//
// A code has the shape OJA-PPPP-SSSS. The payload PPPP is a duration
// character followed by three random alphabet characters; SSSS is the
// HMAC-SHA256 tag of the payload, reduced to four alphabet characters.
// Validation needs only the shared key, so it works without network access.
//
// The key is necessarily shipped inside every client that validates codes
// offline, so anyone who extracts it can mint codes. Server-side redemption
// (see usecase.ActivationUseCase) is the hardened path.
package activation

import (
	"strings"
)

const (
	// Prefix is the literal start of every code.
	Prefix = "OJA-"
	// PayloadLength is the size of the duration+random segment.
	PayloadLength = 4
	// CodeLength is len("OJA-XXXX-XXXX").
	CodeLength = len(Prefix) + PayloadLength + 1 + SignatureLength

	planIndicatorIndex = 1
	growthIndicator    = 'G'
)

// Plan is a subscription tier.
type Plan string

const (
	PlanStarter  Plan = "starter"
	PlanBusiness Plan = "business"
	PlanGrowth   Plan = "growth"
)

// IsPaid reports whether the plan is one a code can unlock.
func (p Plan) IsPaid() bool { return p == PlanBusiness || p == PlanGrowth }

// Duration is the one-character subscription length carried in the payload.
type Duration byte

const (
	Duration30  Duration = 'A'
	Duration90  Duration = 'B'
	Duration180 Duration = 'C'
	Duration365 Duration = 'D'
)

var durationDays = map[Duration]int{
	Duration30:  30,
	Duration90:  90,
	Duration180: 180,
	Duration365: 365,
}

// ValidDays lists the accepted subscription lengths in ascending order.
var ValidDays = []int{30, 90, 180, 365}

// Days returns the length in days and whether d is a defined duration.
func (d Duration) Days() (int, bool) {
	days, ok := durationDays[d]
	return days, ok
}

// DurationForDays maps a day count back to its duration character.
func DurationForDays(days int) (Duration, bool) {
	for d, n := range durationDays {
		if n == days {
			return d, true
		}
	}
	return 0, false
}

// ValidationResult is the outcome of Validate. Invalid results carry no
// reason so the validator cannot be used as an oracle.
type ValidationResult struct {
	Valid bool
	Days  int
	Plan  Plan
}

var invalid = ValidationResult{}

// Normalize uppercases and trims a user-entered code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// split checks the strict OJA-XXXX-XXXX shape of an already normalized code
// and returns its payload and signature segments.
func split(code string) (payload, sig string, ok bool) {
	if len(code) != CodeLength || !strings.HasPrefix(code, Prefix) {
		return "", "", false
	}
	rest := code[len(Prefix):]
	if rest[PayloadLength] != '-' {
		return "", "", false
	}
	payload = rest[:PayloadLength]
	sig = rest[PayloadLength+1:]
	for i := 0; i < PayloadLength; i++ {
		if !inAlphabet(payload[i]) {
			return "", "", false
		}
	}
	for i := 0; i < SignatureLength; i++ {
		if !inAlphabet(sig[i]) {
			return "", "", false
		}
	}
	return payload, sig, true
}

// planFromPayload decodes the tier from the character after the duration.
func planFromPayload(payload string) Plan {
	if payload[planIndicatorIndex] == growthIndicator {
		return PlanGrowth
	}
	return PlanBusiness
}

// MaskCode hides the payload segment for display: OJA-****-SSSS.
// Strings that are not three dash-separated segments are returned unchanged.
func MaskCode(code string) string {
	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		return code
	}
	return Prefix + "****-" + parts[2]
}
