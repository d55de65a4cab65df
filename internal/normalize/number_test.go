package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceqc/internal/domain"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"european_decimal_comma", "257,04", 257.04},
		{"us_thousands", "1,257.04", 1257.04},
		{"european_thousands", "1.257,04", 1257.04},
		{"plain_integer", "42", 42},
		{"plain_decimal", "42.5", 42.5},
		{"euro_symbol", "€ 216,00", 216.00},
		{"dollar_symbol", "$1,000.00", 1000.00},
		{"pound_symbol", "£99.99", 99.99},
		{"bare_comma_thousands", "1,234", 1234},
		{"single_trailing_digit", "5,5", 5.5},
		{"negative_european", "-588,74", -588.74},
		{"large_european", "12.345.678,90", 12345678.90},
		{"surrounding_whitespace", "  64,00  ", 64.00},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseNumber(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestParseNumber_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "12x34", "€"} {
		_, err := ParseNumber(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, domain.ErrFormat)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		name            string
		in              string
		year, month, day int
	}{
		{"iso", "2024-01-15", 2024, 1, 15},
		{"german_dots", "02.05.2022", 2022, 5, 2},
		{"european_slash", "15/01/2024", 2024, 1, 15},
		{"us_slash", "01/15/2024", 2024, 1, 15},
		{"european_dash", "15-01-2024", 2024, 1, 15},
		{"long_month", "January 15, 2024", 2024, 1, 15},
		{"short_month", "Jan 15, 2024", 2024, 1, 15},
		{"european_long", "15 January 2024", 2024, 1, 15},
		{"european_short", "15 Jan 2024", 2024, 1, 15},
		{"ordinal_suffix", "15th January 2024", 2024, 1, 15},
		{"ordinal_first", "1st March 2023", 2023, 3, 1},
		{"no_comma_us", "January 15 2024", 2024, 1, 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.year, got.Year())
			assert.Equal(t, time.Month(tc.month), got.Month())
			assert.Equal(t, tc.day, got.Day())
		})
	}
}

func TestParseDate_AmbiguousNumericFirstMatchWins(t *testing.T) {
	// "03/04/2024" matches the DD/MM layout before MM/DD: 3 April, not March 4.
	got, err := ParseDate("03/04/2024")
	require.NoError(t, err)
	assert.Equal(t, time.April, got.Month())
	assert.Equal(t, 3, got.Day())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "not a date", "32.13.2024", "2024"} {
		_, err := ParseDate(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, domain.ErrFormat)
	}
}
