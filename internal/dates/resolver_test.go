package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{
			name:  "month day two digit year",
			input: "5/1/26",
			want:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "month day four digit year",
			input: "5/1/2026",
			want:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "padded month and day",
			input: "05/01/2026",
			want:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "iso date",
			input: "2026-5-1",
			want:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "irregular internal spacing",
			input: "  5/1/2026  ",
			want:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "written out month via permissive fallback",
			input: "May 1, 2026",
			want:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "empty",
			input: "",
			ok:    false,
		},
		{
			name:  "garbage",
			input: "TBD!!!",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want.Year(), got.Year())
				assert.Equal(t, tt.want.Month(), got.Month())
				assert.Equal(t, tt.want.Day(), got.Day())
			}
		})
	}
}

func TestResolveTimestamp(t *testing.T) {
	got, ok := ResolveTimestamp("1/15/2026 13:45:02")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 15, 13, 45, 2, 0, time.UTC), got)

	// Date-only timestamps still resolve through the date chain.
	got, ok = ResolveTimestamp("1/15/26")
	require.True(t, ok)
	assert.Equal(t, 2026, got.Year())

	_, ok = ResolveTimestamp("not a time")
	assert.False(t, ok)
}

func TestResolveDayLabel(t *testing.T) {
	got, ok := ResolveDayLabel("Feb 3", 2026)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), got)

	// Double spaces inside the label are collapsed before parsing.
	got, ok = ResolveDayLabel("Feb  3", 2026)
	require.True(t, ok)
	assert.Equal(t, 3, got.Day())

	_, ok = ResolveDayLabel("", 2026)
	assert.False(t, ok)

	_, ok = ResolveDayLabel("Febtober 99", 2026)
	assert.False(t, ok)
}
