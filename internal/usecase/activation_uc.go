// File: internal/usecase/activation_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"oja-pos-licensing/internal/domain"
	"oja-pos-licensing/internal/domain/activation"
	"oja-pos-licensing/internal/domain/model"
	"oja-pos-licensing/internal/domain/ports/adapter"
	"oja-pos-licensing/internal/domain/ports/repository"
	"oja-pos-licensing/internal/infra/logging"
	"oja-pos-licensing/internal/infra/metrics"
	red "oja-pos-licensing/internal/infra/redis"
)

// ActivationUseCase redeems activation codes against the used-codes set and
// keeps each shop's subscription state.
type ActivationUseCase interface {
	Activate(ctx context.Context, shopID, deviceID, code string) (*model.ShopSubscription, error)
	Status(ctx context.Context, shopID string) (*model.ShopSubscription, error)
	Deactivate(ctx context.Context, shopID string) (*model.ShopSubscription, error)
}

// ActivationPolicy bounds redemption attempts.
type ActivationPolicy struct {
	AttemptLimit  int
	AttemptWindow time.Duration
	LockTTL       time.Duration
}

type activationUC struct {
	redemptions repository.RedemptionRepository
	subs        repository.SubscriptionRepository
	tm          repository.TransactionManager
	locker      adapter.Locker
	limiter     adapter.AttemptLimiter
	validator   *activation.Validator
	policy      ActivationPolicy
	log         *zerolog.Logger
	devMode     bool
	now         func() time.Time
}

var _ ActivationUseCase = (*activationUC)(nil)

func NewActivationUseCase(
	redemptions repository.RedemptionRepository,
	subs repository.SubscriptionRepository,
	tm repository.TransactionManager,
	locker adapter.Locker,
	limiter adapter.AttemptLimiter,
	validator *activation.Validator,
	policy ActivationPolicy,
	logger *zerolog.Logger,
	devMode bool,
) *activationUC {
	return &activationUC{
		redemptions: redemptions,
		subs:        subs,
		tm:          tm,
		locker:      locker,
		limiter:     limiter,
		validator:   validator,
		policy:      policy,
		log:         logger,
		devMode:     devMode,
		now:         time.Now,
	}
}

// WithClock replaces time.Now. Tests only.
func (uc *activationUC) WithClock(now func() time.Time) *activationUC {
	uc.now = now
	return uc
}

// Activate redeems code for shopID. Invalid and already-used codes are both
// reported as domain.ErrInvalidActivationCode wrapping the precise cause, so
// callers that show a single message can match on the outer error.
func (uc *activationUC) Activate(ctx context.Context, shopID, deviceID, code string) (*model.ShopSubscription, error) {
	ctx = logging.WithShopID(logging.WithDeviceID(ctx, deviceID), shopID)
	log := logging.With(ctx, uc.log)
	defer logging.TraceDuration(log, "ActivationUC.Activate")()

	if shopID == "" || deviceID == "" {
		return nil, domain.ErrInvalidArgument
	}
	masked := logging.RedactCode(code, uc.devMode)

	if uc.limiter != nil && uc.policy.AttemptLimit > 0 {
		ok, err := uc.limiter.Allow(ctx, red.ActivationAttemptKey(deviceID), uc.policy.AttemptLimit, uc.policy.AttemptWindow)
		if err != nil {
			// fail open: the UNIQUE constraint still guards redemption
			log.Warn().Err(err).Msg("attempt limiter unavailable")
		} else if !ok {
			metrics.IncActivationAttempt(metrics.AttemptRateLimited)
			log.Warn().Msg("activation attempts exhausted")
			return nil, domain.ErrRateLimited
		}
	}

	res := uc.validator.Validate(code)
	if !res.Valid {
		metrics.IncActivationAttempt(metrics.AttemptInvalid)
		log.Info().Str("code", masked).Msg("activation code rejected")
		return nil, domain.ErrInvalidActivationCode
	}
	normalized := activation.Normalize(code)

	lockKey := red.CodeLockKey(normalized)
	token, err := uc.locker.TryLock(ctx, lockKey, uc.policy.LockTTL)
	if err != nil {
		if errors.Is(err, domain.ErrLockBusy) {
			metrics.IncActivationAttempt(metrics.AttemptBusy)
			return nil, domain.ErrLockBusy
		}
		metrics.IncActivationAttempt(metrics.AttemptError)
		return nil, fmt.Errorf("lock activation code: %w", err)
	}
	defer func() {
		if err := uc.locker.Unlock(context.Background(), lockKey, token); err != nil {
			log.Warn().Err(err).Str("code", masked).Msg("failed to release activation lock")
		}
	}()

	now := uc.now()
	var out *model.ShopSubscription
	err = uc.tm.WithTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, tx repository.Tx) error {
		r, err := model.NewRedemption(uuid.NewString(), normalized, shopID, deviceID, res, now)
		if err != nil {
			return err
		}
		if err := uc.redemptions.Save(ctx, tx, r); err != nil {
			return err
		}

		sub, err := uc.subs.FindByShop(ctx, tx, shopID)
		if errors.Is(err, domain.ErrNotFound) {
			sub, err = model.NewShopSubscription(uuid.NewString(), shopID)
		}
		if err != nil {
			return err
		}
		if err := sub.Activate(res.Plan, res.Days, now); err != nil {
			return err
		}
		if err := uc.subs.Save(ctx, tx, sub); err != nil {
			return err
		}
		out = sub
		return nil
	})
	switch {
	case errors.Is(err, domain.ErrCodeAlreadyUsed):
		metrics.IncActivationAttempt(metrics.AttemptUsed)
		log.Info().Str("code", masked).Msg("activation code already redeemed")
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidActivationCode, domain.ErrCodeAlreadyUsed)
	case err != nil:
		metrics.IncActivationAttempt(metrics.AttemptError)
		log.Error().Err(err).Str("code", masked).Msg("activation failed")
		return nil, err
	}

	metrics.IncActivationAttempt(metrics.AttemptActivated)
	metrics.IncSubscriptionActivated(string(res.Plan))
	log.Info().
		Str("code", masked).
		Str("plan", string(res.Plan)).
		Int("days", res.Days).
		Time("expires_at", *out.ExpiresAt).
		Msg("subscription activated")
	return out, nil
}

// Status returns the shop's subscription, or an unsaved starter subscription
// when the shop has never activated.
func (uc *activationUC) Status(ctx context.Context, shopID string) (*model.ShopSubscription, error) {
	if shopID == "" {
		return nil, domain.ErrInvalidArgument
	}
	sub, err := uc.subs.FindByShop(ctx, repository.NoTX, shopID)
	if errors.Is(err, domain.ErrNotFound) {
		return model.NewShopSubscription(uuid.NewString(), shopID)
	}
	return sub, err
}

func (uc *activationUC) Deactivate(ctx context.Context, shopID string) (*model.ShopSubscription, error) {
	ctx = logging.WithShopID(ctx, shopID)
	log := logging.With(ctx, uc.log)

	if shopID == "" {
		return nil, domain.ErrInvalidArgument
	}
	var out *model.ShopSubscription
	changed := false
	err := uc.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		sub, err := uc.subs.FindByShop(ctx, tx, shopID)
		if errors.Is(err, domain.ErrNotFound) {
			out, err = model.NewShopSubscription(uuid.NewString(), shopID)
			return err
		}
		if err != nil {
			return err
		}
		sub.Deactivate(uc.now())
		if err := uc.subs.Save(ctx, tx, sub); err != nil {
			return err
		}
		out = sub
		changed = true
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("deactivation failed")
		return nil, err
	}
	if !changed {
		return out, nil
	}
	metrics.IncSubscriptionDeactivated()
	log.Info().Msg("subscription deactivated")
	return out, nil
}
