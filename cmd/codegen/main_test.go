//go:build !integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"oja-pos-licensing/internal/domain/activation"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("OJA_ACTIVATION_SECRET", "")
	var out, errb bytes.Buffer
	args = append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...)
	code := run(context.Background(), args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestRun_Generate(t *testing.T) {
	t.Run("should print codes and write the day file", func(t *testing.T) {
		dir := t.TempDir()
		code, out, errOut := runCLI(t, "--count", "3", "--days", "180", "--out", dir)
		if code != 0 {
			t.Fatalf("exit %d, stderr=%s", code, errOut)
		}

		var codes []string
		for _, line := range strings.Split(out, "\n") {
			if s := strings.TrimSpace(line); strings.HasPrefix(s, activation.Prefix) {
				codes = append(codes, s)
			}
		}
		if len(codes) != 3 {
			t.Fatalf("expected 3 codes on stdout, got %d:\n%s", len(codes), out)
		}
		for _, c := range codes {
			if res := activation.ValidateCode(c); !res.Valid || res.Days != 180 {
				t.Errorf("%s does not validate as 180 days: %+v", c, res)
			}
		}

		files, _ := filepath.Glob(filepath.Join(dir, "codes-*.txt"))
		if len(files) != 1 {
			t.Fatalf("expected one artifact, got %v", files)
		}
		raw, _ := os.ReadFile(files[0])
		if !strings.Contains(string(raw), "Duration: 180 days | Count: 3") {
			t.Errorf("unexpected artifact header:\n%s", raw)
		}
		for _, c := range codes {
			if !strings.Contains(string(raw), c) {
				t.Errorf("artifact missing %s", c)
			}
		}
	})

	t.Run("should reject bad days with exit 1", func(t *testing.T) {
		code, out, errOut := runCLI(t, "--days", "60", "--out", t.TempDir())
		if code != 1 {
			t.Fatalf("expected exit 1, got %d", code)
		}
		if !strings.Contains(errOut, "--days must be one of") {
			t.Errorf("unexpected stderr %q", errOut)
		}
		if strings.Contains(out, activation.Prefix) {
			t.Error("no codes should be printed")
		}
	})

	t.Run("should reject bad counts with exit 1", func(t *testing.T) {
		for _, n := range []string{"0", "1001"} {
			code, _, errOut := runCLI(t, "--count", n, "--out", t.TempDir())
			if code != 1 || !strings.Contains(errOut, "--count must be between 1 and 1000") {
				t.Errorf("count %s: exit %d stderr %q", n, code, errOut)
			}
		}
	})

	t.Run("should reject unknown flags with exit 1", func(t *testing.T) {
		if code, _, _ := runCLI(t, "--nope"); code != 1 {
			t.Fatalf("expected exit 1, got %d", code)
		}
	})
}

func TestRun_Verify(t *testing.T) {
	t.Run("should decode a known code", func(t *testing.T) {
		code, out, _ := runCLI(t, "--verify", "oja-cgqr-xs6k")
		if code != 0 {
			t.Fatalf("expected exit 0, got %d", code)
		}
		if !strings.Contains(out, "OJA-CGQR-XS6K: valid, growth plan, 180 days") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("should fail on a tampered code", func(t *testing.T) {
		code, out, _ := runCLI(t, "--verify", "OJA-A2B3-5UCE")
		if code != 1 || !strings.Contains(out, "invalid") {
			t.Fatalf("exit %d output %q", code, out)
		}
	})
}
