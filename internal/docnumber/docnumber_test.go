package docnumber_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gstbill/internal/docnumber"
)

func TestParse(t *testing.T) {
	seq, year, ok := docnumber.Parse("#12/2024")
	assert.True(t, ok)
	assert.Equal(t, int64(12), seq)
	assert.Equal(t, 2024, year)

	for _, bad := range []string{"12/2024", "#12-2024", "##12/2024", "#12/24", "#abc/2024", " #1/2024", "#99999999999999999999/2024"} {
		_, _, ok := docnumber.Parse(bad)
		assert.False(t, ok, bad)
	}
}

func TestNext(t *testing.T) {
	t.Run("max_based_continuation", func(t *testing.T) {
		got := docnumber.Next([]string{"#1/2024", "#3/2024", "#notanumber"}, 2024)
		assert.Equal(t, "#4/2024", got)
	})

	t.Run("resets_each_year", func(t *testing.T) {
		got := docnumber.Next([]string{"#7/2023", "#8/2023"}, 2024)
		assert.Equal(t, "#1/2024", got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "#1/2025", docnumber.Next(nil, 2025))
	})

	t.Run("order_does_not_matter", func(t *testing.T) {
		assert.Equal(t, "#11/2024", docnumber.Next([]string{"#10/2024", "#2/2024", "INV-99"}, 2024))
	})

	t.Run("leading_zeros", func(t *testing.T) {
		assert.Equal(t, "#8/2024", docnumber.Next([]string{"#007/2024"}, 2024))
	})

	t.Run("past_int64_range", func(t *testing.T) {
		assert.Equal(t, "#9223372036854775808/2024", docnumber.Next([]string{"#9223372036854775807/2024"}, 2024))
		assert.Equal(t, "#100000000000000000000/2024",
			docnumber.Next([]string{"#99999999999999999999/2024", "#3/2024"}, 2024))
	})
}

func TestValidate(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in    string
		valid bool
		msg   string
	}{
		{"#1/2024", true, ""},
		{"#15/2025", true, ""},
		{"", false, "Document number is required"},
		{"   ", false, "Document number is required"},
		{"INV-1", false, "Format should be #number/year (e.g., #123/2024)"},
		{"#12", false, "Format should be #number/year (e.g., #123/2024)"},
		{"#a/2024", false, "Invalid format. Use #number/year (e.g., #123/2024)"},
		{"##1/2024", false, "Invalid format. Use #number/year (e.g., #123/2024)"},
		{"#0/2024", false, "Document number must be greater than 0"},
		{"#1/2019", false, "Year should be between 2020 and 2025"},
		{"#1/2026", false, "Year should be between 2020 and 2025"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			res := docnumber.Validate(tt.in, now)
			assert.Equal(t, tt.valid, res.Valid)
			assert.Equal(t, tt.msg, res.Error)
		})
	}
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "#42/2024", docnumber.Suggest("INV-042", 2024))
	assert.Equal(t, "#7/2024", docnumber.Suggest("7/23", 2024))
	assert.Equal(t, "#1/2024", docnumber.Suggest("draft", 2024))
	assert.Equal(t, "#1/2024", docnumber.Suggest("000", 2024))
}
