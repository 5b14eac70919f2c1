package fingerprint

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCompute_Deterministic(t *testing.T) {
	a := Compute("acct-1", day(2024, 1, 1), dec("-4.50"), "Coffee Shop")
	b := Compute("acct-1", day(2024, 1, 1), dec("-4.50"), "Coffee Shop")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestCompute_AmountScaleNormalized(t *testing.T) {
	a := Compute("acct-1", day(2024, 1, 1), dec("-4.5"), "Coffee Shop")
	b := Compute("acct-1", day(2024, 1, 1), dec("-4.50"), "Coffee Shop")
	assert.Equal(t, a, b)
}

func TestCompute_DifferentAccountsDiffer(t *testing.T) {
	a := Compute("acct-1", day(2024, 1, 1), dec("-4.50"), "Coffee Shop")
	b := Compute("acct-2", day(2024, 1, 1), dec("-4.50"), "Coffee Shop")
	assert.NotEqual(t, a, b)
}

func TestCompute_FieldsMatter(t *testing.T) {
	base := Compute("acct-1", day(2024, 1, 1), dec("-4.50"), "Coffee Shop")
	assert.NotEqual(t, base, Compute("acct-1", day(2024, 1, 2), dec("-4.50"), "Coffee Shop"))
	assert.NotEqual(t, base, Compute("acct-1", day(2024, 1, 1), dec("-4.51"), "Coffee Shop"))
	assert.NotEqual(t, base, Compute("acct-1", day(2024, 1, 1), dec("-4.50"), "Coffee  Shop"))
}
