package activation

import (
	"crypto/rand"
	"fmt"
	"io"

	"oja-pos-licensing/internal/domain"
)

const (
	randomChars = PayloadLength - 1

	// MinBatch and MaxBatch bound a single administrative run.
	MinBatch = 1
	MaxBatch = 1000
)

// Generator mints signed activation codes.
type Generator struct {
	key  []byte
	rand io.Reader
}

// GeneratorOption customises a Generator.
type GeneratorOption func(*Generator)

// WithRandom replaces crypto/rand as the payload source. Tests only.
func WithRandom(r io.Reader) GeneratorOption {
	return func(g *Generator) { g.rand = r }
}

// NewGenerator returns a generator signing with key.
func NewGenerator(key []byte, opts ...GeneratorOption) *Generator {
	g := &Generator{key: append([]byte(nil), key...), rand: rand.Reader}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate produces one code for a 30, 90, 180 or 365 day subscription.
func (g *Generator) Generate(days int) (string, error) {
	d, ok := DurationForDays(days)
	if !ok {
		return "", fmt.Errorf("%w: %d (use 30, 90, 180 or 365)", domain.ErrInvalidDuration, days)
	}

	// byte%31 has a bias of at most 1/256 per symbol; acceptable for codes
	// that are also signed.
	buf := make([]byte, randomChars)
	if _, err := io.ReadFull(g.rand, buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	payload := make([]byte, 0, PayloadLength)
	payload = append(payload, byte(d))
	for _, b := range buf {
		payload = append(payload, Alphabet[int(b)%len(Alphabet)])
	}

	p := string(payload)
	return Prefix + p + "-" + signPayload(g.key, p), nil
}

// GenerateBatch produces count independent codes. Duplicates are possible
// in principle and are not filtered out here.
func (g *Generator) GenerateBatch(count, days int) ([]string, error) {
	if count < MinBatch || count > MaxBatch {
		return nil, fmt.Errorf("%w: %d (must be between %d and %d)", domain.ErrInvalidCount, count, MinBatch, MaxBatch)
	}
	if _, ok := DurationForDays(days); !ok {
		return nil, fmt.Errorf("%w: %d (use 30, 90, 180 or 365)", domain.ErrInvalidDuration, days)
	}
	codes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		c, err := g.Generate(days)
		if err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, nil
}
