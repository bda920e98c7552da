package model

import (
	"time"

	"oja-pos-licensing/internal/domain"
	"oja-pos-licensing/internal/domain/activation"
)

// Redemption records a code that has been consumed by a shop. The set of
// redemptions is the used-codes set: a code may appear in it at most once.
type Redemption struct {
	ID         string
	Code       string // normalized
	ShopID     string
	DeviceID   string
	Plan       activation.Plan
	Days       int
	RedeemedAt time.Time
}

// NewRedemption builds a redemption from a code that already passed validation.
func NewRedemption(id, code, shopID, deviceID string, res activation.ValidationResult, now time.Time) (*Redemption, error) {
	if id == "" || shopID == "" || !res.Valid {
		return nil, domain.ErrInvalidArgument
	}
	return &Redemption{
		ID:         id,
		Code:       activation.Normalize(code),
		ShopID:     shopID,
		DeviceID:   deviceID,
		Plan:       res.Plan,
		Days:       res.Days,
		RedeemedAt: now,
	}, nil
}
