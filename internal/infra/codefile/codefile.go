// Package codefile keeps the per-day text artifact of generated codes.
package codefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Entry is one generator run as recorded on disk.
type Entry struct {
	BatchID string
	Plan    string
	Days    int
	Codes   []string
	At      time.Time
}

// FileName returns the artifact name for the UTC day of t.
func FileName(t time.Time) string {
	return "codes-" + t.UTC().Format(dateLayout) + ".txt"
}

// Append writes e to dir/codes-YYYY-MM-DD.txt, creating the file on the
// first run of the day and separating later runs with a blank line. It
// returns the file path.
func Append(dir string, e Entry) (string, error) {
	if len(e.Codes) == 0 {
		return "", fmt.Errorf("codefile: empty batch")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("codefile: create dir: %w", err)
	}
	path := filepath.Join(dir, FileName(e.At))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("codefile: open: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("codefile: stat: %w", err)
	}

	var sb strings.Builder
	if st.Size() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(header(e))
	for _, c := range e.Codes {
		sb.WriteString(c)
		sb.WriteString("\n")
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		return "", fmt.Errorf("codefile: write: %w", err)
	}
	return path, f.Sync()
}

func header(e Entry) string {
	plan := e.Plan
	if plan != "" {
		plan = strings.ToUpper(plan[:1]) + plan[1:]
	}
	return fmt.Sprintf("# Oja POS Activation Codes - %s\n# Plan: %s | Duration: %d days | Count: %d | Batch: %s\n\n",
		e.At.UTC().Format(dateLayout), plan, e.Days, len(e.Codes), e.BatchID)
}
