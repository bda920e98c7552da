// File: cmd/codegen/main.go
//
// codegen mints activation codes for shop owners who paid offline.
//
//	codegen --count 10 --days 30
//	codegen --count 5 --days 365 --out ./artifacts
//	codegen --verify OJA-A2B3-5UCD
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"oja-pos-licensing/internal/config"
	"oja-pos-licensing/internal/domain/activation"
	"oja-pos-licensing/internal/infra/codefile"
	"oja-pos-licensing/internal/infra/logging"
	"oja-pos-licensing/internal/usecase"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("codegen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	count := fs.Int("count", 1, "number of codes to generate (1-1000)")
	days := fs.Int("days", 30, "subscription length: 30, 90, 180 or 365")
	cfgPath := fs.String("config", "config.yaml", "optional YAML config file")
	outDir := fs.String("out", "", "directory for codes-YYYY-MM-DD.txt (default from config)")
	verify := fs.String("verify", "", "decode CODE offline instead of generating")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	cfg, err := config.LoadGeneratorConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	key := []byte(cfg.Activation.SecretKey)

	if *verify != "" {
		return verifyCode(stdout, activation.NewValidator(key), *verify)
	}

	if _, ok := activation.DurationForDays(*days); !ok {
		fmt.Fprintln(stderr, "Error: --days must be one of: 30, 90, 180, 365")
		return 1
	}
	if *count < activation.MinBatch || *count > activation.MaxBatch {
		fmt.Fprintf(stderr, "Error: --count must be between %d and %d\n", activation.MinBatch, activation.MaxBatch)
		return 1
	}

	// logs go to stderr so stdout stays a clean list of codes
	logger := logging.NewWithWriter(stderr, cfg.Log, false)
	uc := usecase.NewCodegenUseCase(activation.NewGenerator(key), logger)

	batch, err := uc.Issue(ctx, *count, *days)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "\nGenerating %d activation code(s) for %d-day Business plan...\n\n", *count, *days)
	for _, c := range batch.Codes {
		fmt.Fprintf(stdout, "  %s\n", c)
	}

	dir := *outDir
	if dir == "" {
		dir = cfg.Activation.OutputDir
	}
	path, err := codefile.Append(dir, codefile.Entry{
		BatchID: batch.ID,
		Plan:    string(batch.Plan),
		Days:    batch.Days,
		Codes:   batch.Codes,
		At:      batch.CreatedAt,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "\nSaved to: %s\n", path)
	return 0
}

func verifyCode(stdout io.Writer, v *activation.Validator, code string) int {
	res := v.Validate(code)
	if !res.Valid {
		fmt.Fprintf(stdout, "%s: invalid\n", code)
		return 1
	}
	fmt.Fprintf(stdout, "%s: valid, %s plan, %d days\n", activation.Normalize(code), res.Plan, res.Days)
	return 0
}
