package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	// Yen is sent without minor units, everything else with zeroed cents
	assert.Equal(t, "1000", formatAmount(1000, "JPY"))
	assert.Equal(t, "1000.00", formatAmount(1000, "USD"))
}

func TestParseAmountWholeUnits(t *testing.T) {
	for value, want := range map[string]int64{
		"1000":    1000,
		"2000.00": 2000,
		"3000.0":  3000,
	} {
		got, err := parseAmount(value)
		require.NoError(t, err, value)
		assert.Equal(t, want, got, value)
	}
}

func TestParseAmountRejectsMinorUnits(t *testing.T) {
	// A fractional amount can never match an order this gateway created, so
	// it must fail loudly instead of truncating
	for _, value := range []string{"10.50", "999.99", "0.01"} {
		_, err := parseAmount(value)
		assert.ErrorContains(t, err, "minor units", value)
	}
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "abc", "10,50"} {
		_, err := parseAmount(value)
		assert.Error(t, err, value)
	}
}
