package activation

import "crypto/hmac"

// DefaultSecretKey is the key every released client validates against.
// Codes already sold were signed with it, so changing it invalidates them.
const DefaultSecretKey = "oja-pos-2026-secret-key"

// Validator checks activation codes offline. It holds no mutable state and
// is safe for concurrent use.
type Validator struct {
	key []byte
}

// NewValidator returns a validator for codes signed with key.
func NewValidator(key []byte) *Validator {
	return &Validator{key: append([]byte(nil), key...)}
}

var defaultValidator = NewValidator([]byte(DefaultSecretKey))

// ValidateCode validates with the built-in key.
func ValidateCode(code string) ValidationResult {
	return defaultValidator.Validate(code)
}

// Validate normalizes code and reports whether it is a correctly signed
// activation code. Malformed input is an ordinary invalid result.
func (v *Validator) Validate(code string) ValidationResult {
	payload, sig, ok := split(Normalize(code))
	if !ok {
		return invalid
	}

	days, ok := Duration(payload[0]).Days()
	if !ok {
		return invalid
	}

	expected := signPayload(v.key, payload)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return invalid
	}

	return ValidationResult{
		Valid: true,
		Days:  days,
		Plan:  planFromPayload(payload),
	}
}
