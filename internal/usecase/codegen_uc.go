// File: internal/usecase/codegen_uc.go
package usecase

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"oja-pos-licensing/internal/domain/activation"
	"oja-pos-licensing/internal/infra/logging"
	"oja-pos-licensing/internal/infra/metrics"
)

// Batch is one administrative generator run.
type Batch struct {
	ID        string
	Days      int
	Plan      activation.Plan
	Codes     []string
	CreatedAt time.Time
}

type CodegenUseCase interface {
	Issue(ctx context.Context, count, days int) (*Batch, error)
}

type codegenUC struct {
	gen *activation.Generator
	log *zerolog.Logger
	now func() time.Time
}

var _ CodegenUseCase = (*codegenUC)(nil)

func NewCodegenUseCase(gen *activation.Generator, logger *zerolog.Logger) *codegenUC {
	return &codegenUC{gen: gen, log: logger, now: time.Now}
}

// Issue mints count codes for a days-long subscription. Batches are labelled
// business; codes whose payload carries G in second position decode as growth.
func (uc *codegenUC) Issue(ctx context.Context, count, days int) (*Batch, error) {
	log := logging.With(ctx, uc.log)
	defer logging.TraceDuration(log, "CodegenUC.Issue")()

	codes, err := uc.gen.GenerateBatch(count, days)
	if err != nil {
		log.Warn().Err(err).Int("count", count).Int("days", days).Msg("code generation refused")
		return nil, err
	}
	now := uc.now()
	b := &Batch{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Days:      days,
		Plan:      activation.PlanBusiness,
		Codes:     codes,
		CreatedAt: now,
	}
	metrics.AddCodesGenerated(days, len(codes))
	log.Info().Str("batch_id", b.ID).Int("count", len(codes)).Int("days", days).Msg("activation codes issued")
	return b, nil
}
