//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"oja-pos-licensing/internal/domain"
	"oja-pos-licensing/internal/domain/model"
	"oja-pos-licensing/internal/domain/ports/adapter"
	"oja-pos-licensing/internal/domain/ports/repository"
)

// ---- In-memory RedemptionRepository ----

type MockRedemptionRepo struct {
	mu       sync.Mutex
	byCode   map[string]*model.Redemption
	SaveFunc func(ctx context.Context, tx repository.Tx, r *model.Redemption) error
}

var _ repository.RedemptionRepository = (*MockRedemptionRepo)(nil)

func NewMockRedemptionRepo() *MockRedemptionRepo {
	return &MockRedemptionRepo{byCode: map[string]*model.Redemption{}}
}

func (m *MockRedemptionRepo) Save(ctx context.Context, tx repository.Tx, r *model.Redemption) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byCode[r.Code]; ok {
		return domain.ErrCodeAlreadyUsed
	}
	cp := *r
	m.byCode[r.Code] = &cp
	return nil
}

func (m *MockRedemptionRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.Redemption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byCode[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MockRedemptionRepo) CountByPlan(ctx context.Context, tx repository.Tx) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, r := range m.byCode {
		out[string(r.Plan)]++
	}
	return out, nil
}

func (m *MockRedemptionRepo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byCode)
}

// ---- In-memory SubscriptionRepository ----

type MockSubscriptionRepo struct {
	mu       sync.Mutex
	byShop   map[string]*model.ShopSubscription
	SaveFunc func(ctx context.Context, tx repository.Tx, s *model.ShopSubscription) error
}

var _ repository.SubscriptionRepository = (*MockSubscriptionRepo)(nil)

func NewMockSubscriptionRepo() *MockSubscriptionRepo {
	return &MockSubscriptionRepo{byShop: map[string]*model.ShopSubscription{}}
}

func (m *MockSubscriptionRepo) Save(ctx context.Context, tx repository.Tx, s *model.ShopSubscription) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.byShop[s.ShopID] = &cp
	return nil
}

func (m *MockSubscriptionRepo) FindByShop(ctx context.Context, tx repository.Tx, shopID string) (*model.ShopSubscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byShop[shopID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

// ---- TransactionManager ----

type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

// WithTx runs fn immediately with NoTX unless WithTxFunc is set.
func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, repository.NoTX)
}

// ---- In-memory Locker ----

type MockLocker struct {
	mu       sync.Mutex
	held     map[string]string
	ErrOn    map[string]error
	Unlocked int
}

var _ adapter.Locker = (*MockLocker)(nil)

func NewMockLocker() *MockLocker {
	return &MockLocker{held: map[string]string{}, ErrOn: map[string]error{}}
}

func (l *MockLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err, bad := l.ErrOn[key]; bad {
		return "", err
	}
	if tok, ok := l.held[key]; ok && tok != "" {
		return "", domain.ErrLockBusy
	}
	tok := uuid.NewString()
	l.held[key] = tok
	return tok, nil
}

func (l *MockLocker) Unlock(ctx context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == token {
		delete(l.held, key)
		l.Unlocked++
		return nil
	}
	return domain.ErrUnauthorized
}

// Hold marks key as taken by someone else.
func (l *MockLocker) Hold(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held[key] = "other-holder"
}

// ---- AttemptLimiter ----

type MockLimiter struct {
	mu        sync.Mutex
	Counts    map[string]int
	AllowFunc func(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

var _ adapter.AttemptLimiter = (*MockLimiter)(nil)

func NewMockLimiter() *MockLimiter {
	return &MockLimiter{Counts: map[string]int{}}
}

func (l *MockLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if l.AllowFunc != nil {
		return l.AllowFunc(ctx, key, limit, window)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Counts[key]++
	return l.Counts[key] <= limit, nil
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
