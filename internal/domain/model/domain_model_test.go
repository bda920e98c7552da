//go:build !integration

package model

import (
	"errors"
	"testing"
	"time"

	"oja-pos-licensing/internal/domain"
	"oja-pos-licensing/internal/domain/activation"
)

var now = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

// --- Redemption Model Tests ---

func TestNewRedemption(t *testing.T) {
	res := activation.ValidationResult{Valid: true, Days: 90, Plan: activation.PlanBusiness}

	t.Run("should normalize the code", func(t *testing.T) {
		r, err := NewRedemption("r-1", "  oja-b9xz-swjm ", "shop-1", "dev-1", res, now)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if r.Code != "OJA-B9XZ-SWJM" {
			t.Errorf("expected normalized code, got %q", r.Code)
		}
		if r.Days != 90 || r.Plan != activation.PlanBusiness {
			t.Errorf("unexpected decoded fields: %+v", r)
		}
	})

	t.Run("should refuse an invalid validation result", func(t *testing.T) {
		_, err := NewRedemption("r-1", "OJA-B9XZ-SWJM", "shop-1", "dev-1", activation.ValidationResult{}, now)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("should require a shop", func(t *testing.T) {
		_, err := NewRedemption("r-1", "OJA-B9XZ-SWJM", "", "dev-1", res, now)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

// --- ShopSubscription Model Tests ---

func TestShopSubscription_Lifecycle(t *testing.T) {
	sub, err := NewShopSubscription("s-1", "shop-1")
	if err != nil {
		t.Fatalf("expected no error, but got: %v", err)
	}
	if sub.Plan != activation.PlanStarter || sub.IsPremium(now) || sub.IsExpired(now) {
		t.Fatalf("expected fresh starter subscription, got %+v", sub)
	}
	if sub.DaysRemaining(now) != 0 {
		t.Errorf("expected 0 days remaining on starter")
	}

	if err := sub.Activate(activation.PlanBusiness, 30, now); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if !sub.IsPremium(now) {
		t.Error("expected premium right after activation")
	}
	if got := sub.DaysRemaining(now); got != 30 {
		t.Errorf("expected 30 days remaining, got %d", got)
	}
	if got := sub.DaysRemaining(now.Add(29*24*time.Hour + time.Hour)); got != 1 {
		t.Errorf("expected partial day to round up to 1, got %d", got)
	}

	later := now.Add(30 * 24 * time.Hour)
	if sub.IsPremium(later) || !sub.IsExpired(later) {
		t.Error("expected subscription to be expired at its expiry instant")
	}
	if sub.DaysRemaining(later.Add(time.Hour)) != 0 {
		t.Error("expected no days remaining after expiry")
	}

	sub.Deactivate(later)
	if sub.Plan != activation.PlanStarter || sub.ExpiresAt != nil || sub.IsExpired(later) {
		t.Errorf("expected deactivated starter subscription, got %+v", sub)
	}
}

func TestShopSubscription_GrowthIsPremium(t *testing.T) {
	sub, _ := NewShopSubscription("s-1", "shop-1")
	if err := sub.Activate(activation.PlanGrowth, 365, now); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if !sub.IsPremium(now) {
		t.Error("expected growth plan to be premium")
	}
}

func TestShopSubscription_ActivateRejectsStarter(t *testing.T) {
	sub, _ := NewShopSubscription("s-1", "shop-1")
	if err := sub.Activate(activation.PlanStarter, 30, now); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if err := sub.Activate(activation.PlanBusiness, 0, now); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for zero days, got %v", err)
	}
}

// --- Feature Access Tests ---

func TestCanAccess(t *testing.T) {
	starter, _ := NewShopSubscription("s-1", "shop-1")
	paid, _ := NewShopSubscription("s-2", "shop-2")
	_ = paid.Activate(activation.PlanBusiness, 30, now)

	tests := []struct {
		name    string
		feature Feature
		sub     *ShopSubscription
		want    bool
	}{
		{"free feature on starter", FeatureSell, starter, true},
		{"premium feature on starter", FeatureCloudSync, starter, false},
		{"premium feature on paid", FeatureCloudSync, paid, true},
		{"unknown feature", Feature("teleport"), starter, true},
		{"premium feature without subscription", FeaturePayroll, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccess(tt.feature, tt.sub, now); got != tt.want {
				t.Errorf("CanAccess(%s) = %v, want %v", tt.feature, got, tt.want)
			}
		})
	}

	if ProductLimit(starter, now) != FreeProductLimit {
		t.Errorf("expected starter product limit %d", FreeProductLimit)
	}
	if ProductLimit(paid, now) != 0 {
		t.Error("expected unlimited products on paid plan")
	}
	if CanAccess(FeatureCloudSync, paid, now.Add(31*24*time.Hour)) {
		t.Error("expected premium feature to lock after expiry")
	}
}
