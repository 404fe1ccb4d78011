package domain_test

import (
	"testing"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cny(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), "CNY")
}

func TestMoney_Add(t *testing.T) {
	sum, err := cny("100.50").Add(cny("49.50"))
	require.NoError(t, err)
	assert.True(t, sum.Equal(cny("150.00")))

	// Receiver is never mutated
	a := cny("10")
	_, err = a.Add(cny("5"))
	require.NoError(t, err)
	assert.True(t, a.Equal(cny("10")))
}

func TestMoney_Add_CurrencyMismatch(t *testing.T) {
	_, err := cny("100").Add(domain.NewMoney(decimal.NewFromInt(100), "USD"))
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestMoney_Sub(t *testing.T) {
	diff, err := cny("100.00").Sub(cny("130.00"))
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())
	assert.True(t, diff.Equal(cny("-30.00")))

	_, err = cny("100").Sub(domain.NewMoney(decimal.NewFromInt(1), "EUR"))
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestMoney_Mul_RoundsToCurrencyScale(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		factor string
		want   string
	}{
		{"exact", "100.00", "0.1", "10.00"},
		{"rounds half up", "100.05", "0.5", "50.03"},
		{"rounds down", "33.33", "0.333", "11.10"},
		{"zero factor", "250.00", "0", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cny(tt.amount).Mul(decimal.RequireFromString(tt.factor))
			assert.True(t, got.Equal(cny(tt.want)), "got %s, want %s", got.DisplayString(), tt.want)
			assert.Equal(t, "CNY", got.CurrencyCode)
		})
	}
}

func TestMoney_NegAbs(t *testing.T) {
	m := cny("42.42")
	assert.True(t, m.Neg().IsNegative())
	assert.True(t, m.Neg().Neg().Equal(m))
	assert.True(t, m.Neg().Abs().Equal(m))
}

func TestMoney_Cmp(t *testing.T) {
	got, err := cny("10").Cmp(cny("20"))
	require.NoError(t, err)
	assert.Equal(t, -1, got)

	got, err = cny("20").Cmp(cny("20.00"))
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = cny("10").Cmp(domain.NewMoney(decimal.NewFromInt(10), "USD"))
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestMoney_Equal_RequiresSameCurrency(t *testing.T) {
	assert.False(t, cny("10").Equal(domain.NewMoney(decimal.NewFromInt(10), "USD")))
	// Different representations of the same value compare equal
	assert.True(t, cny("10").Equal(cny("10.00")))
}

func TestZeroMoney(t *testing.T) {
	z := domain.ZeroMoney("CNY")
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())
	assert.False(t, z.IsNegative())
	assert.Equal(t, "0.00 CNY", z.DisplayString())
}

func TestMoney_DisplayString(t *testing.T) {
	assert.Equal(t, "1000.00 CNY", cny("1000").DisplayString())
	assert.Equal(t, "-12.35 CNY", cny("-12.345").Neg().Neg().DisplayString())
}
