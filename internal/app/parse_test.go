package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/ports"
)

func TestParseTradeDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
		fails bool
	}{
		{name: "full date", input: "05/05/2024", want: time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)},
		{name: "day and month default year", input: "31/12", want: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		{name: "single digit parts", input: "5/5", want: time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)},
		{name: "leap day", input: "29/02/2024", want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{name: "impossible day", input: "31/02", fails: true},
		{name: "non leap day", input: "29/02/2023", fails: true},
		{name: "month out of range", input: "05/13", fails: true},
		{name: "zero day", input: "00/05", fails: true},
		{name: "two digit year", input: "05/05/24", fails: true},
		{name: "iso shape", input: "2024-05-05", fails: true},
		{name: "empty", input: "", fails: true},
		{name: "letters", input: "aa/bb", fails: true},
		{name: "too many parts", input: "1/2/3/4", fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTradeDate(tt.input, now)
			if tt.fails {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ports.ErrInvalidDate), "expected ErrInvalidDate, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "expected %v, got %v", tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		fails bool
	}{
		{name: "dot separator", input: "10.00", want: 10},
		{name: "comma separator", input: "12,50", want: 12.5},
		{name: "negative comma", input: "-300,40", want: -300.4},
		{name: "integer", input: "150", want: 150},
		{name: "surrounding spaces", input: " 7.25 ", want: 7.25},
		{name: "letters", input: "abc", fails: true},
		{name: "empty", input: "", fails: true},
		{name: "two commas", input: "1,2,3", fails: true},
		{name: "mixed separators", input: "1,000.50", fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.fails {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ports.ErrInvalidAmount), "expected ErrInvalidAmount, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
