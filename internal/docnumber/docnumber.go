// Package docnumber implements the "#<seq>/<year>" document number grammar.
package docnumber

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MinYear is the earliest year accepted by Validate.
const MinYear = 2020

var (
	canonicalPattern = regexp.MustCompile(`^#(\d+)/(\d{4})$`)
	digitRun         = regexp.MustCompile(`\d+`)
)

// Parse extracts the sequence and year from a canonical number such as
// "#12/2024". ok is false for any other shape.
func Parse(s string) (seq int64, year int, ok bool) {
	m := canonicalPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	seq, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(m[2])
	return seq, year, true
}

// Format builds a canonical number.
func Format(seq int64, year int) string {
	return fmt.Sprintf("#%d/%d", seq, year)
}

// Next continues the highest canonical sequence used in year. Numbers of
// other years or other shapes are ignored, so the sequence restarts at 1
// every year. Sequences are compared as arbitrary-precision integers, so a
// sequence past the int64 range still counts and the result never wraps.
func Next(numbers []string, year int) string {
	highest := decimal.Zero
	for _, n := range numbers {
		m := canonicalPattern.FindStringSubmatch(n)
		if m == nil {
			continue
		}
		if y, _ := strconv.Atoi(m[2]); y != year {
			continue
		}
		seq, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		if seq.GreaterThan(highest) {
			highest = seq
		}
	}
	return fmt.Sprintf("#%s/%d", highest.Add(decimal.NewFromInt(1)).String(), year)
}

// Result is the outcome of Validate.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Validate is a format hint for the number field. It never gates a save.
func Validate(s string, now time.Time) Result {
	if strings.TrimSpace(s) == "" {
		return Result{Error: "Document number is required"}
	}
	if !strings.Contains(s, "#") || !strings.Contains(s, "/") {
		return Result{Error: "Format should be #number/year (e.g., #123/2024)"}
	}
	m := canonicalPattern.FindStringSubmatch(s)
	if m == nil {
		return Result{Error: "Invalid format. Use #number/year (e.g., #123/2024)"}
	}

	seq, err := strconv.ParseInt(m[1], 10, 64)
	if err == nil && seq < 1 {
		return Result{Error: "Document number must be greater than 0"}
	}
	year, _ := strconv.Atoi(m[2])
	maxYear := now.Year() + 1
	if year < MinYear || year > maxYear {
		return Result{Error: fmt.Sprintf("Year should be between %d and %d", MinYear, maxYear)}
	}
	return Result{Valid: true}
}

// Suggest rewrites free text into a canonical number for year, using the
// first run of digits as the sequence ("INV-042" -> "#42/2024").
func Suggest(s string, year int) string {
	run := digitRun.FindString(s)
	if run == "" {
		return Format(1, year)
	}
	seq, err := strconv.ParseInt(run, 10, 64)
	if err != nil || seq < 1 {
		return Format(1, year)
	}
	return Format(seq, year)
}
