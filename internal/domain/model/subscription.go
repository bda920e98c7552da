package model

import (
	"math"
	"time"

	"oja-pos-licensing/internal/domain"
	"oja-pos-licensing/internal/domain/activation"
)

const day = 24 * time.Hour

// ShopSubscription is the activation state of one shop.
// A shop without a paid activation is on the starter plan.
type ShopSubscription struct {
	ID          string
	ShopID      string
	Plan        activation.Plan
	ActivatedAt *time.Time // nil on starter
	ExpiresAt   *time.Time // nil on starter
	UpdatedAt   time.Time
}

// NewShopSubscription returns a starter subscription for shopID.
func NewShopSubscription(id, shopID string) (*ShopSubscription, error) {
	if id == "" || shopID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &ShopSubscription{
		ID:        id,
		ShopID:    shopID,
		Plan:      activation.PlanStarter,
		UpdatedAt: time.Now(),
	}, nil
}

// Activate starts plan now for durationDays, replacing any previous period.
func (s *ShopSubscription) Activate(plan activation.Plan, durationDays int, now time.Time) error {
	if !plan.IsPaid() || durationDays <= 0 {
		return domain.ErrInvalidArgument
	}
	start := now
	expires := now.Add(time.Duration(durationDays) * day)
	s.Plan = plan
	s.ActivatedAt = &start
	s.ExpiresAt = &expires
	s.UpdatedAt = now
	return nil
}

// Deactivate returns the shop to the starter plan.
func (s *ShopSubscription) Deactivate(now time.Time) {
	s.Plan = activation.PlanStarter
	s.ActivatedAt = nil
	s.ExpiresAt = nil
	s.UpdatedAt = now
}

// IsPremium reports whether a paid plan is in force at now.
func (s *ShopSubscription) IsPremium(now time.Time) bool {
	if s == nil || !s.Plan.IsPaid() || s.ExpiresAt == nil {
		return false
	}
	return s.ExpiresAt.After(now)
}

// IsExpired reports whether an activation existed and has run out.
func (s *ShopSubscription) IsExpired(now time.Time) bool {
	if s == nil || s.ExpiresAt == nil {
		return false
	}
	return !s.ExpiresAt.After(now)
}

// DaysRemaining rounds the time left up to whole days, never below zero.
func (s *ShopSubscription) DaysRemaining(now time.Time) int {
	if s == nil || s.ExpiresAt == nil {
		return 0
	}
	left := s.ExpiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(float64(left) / float64(day)))
}
