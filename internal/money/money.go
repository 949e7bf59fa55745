package money

import "github.com/shopspring/decimal"

// Round2 rounds a monetary value to two decimal places.
// Rounding is applied once per committed field, never per intermediate term.
func Round2(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}

// Add returns round2(a + b).
func Add(a, b float64) float64 {
	sum, _ := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Round(2).Float64()
	return sum
}

// Sub returns round2(a - b).
func Sub(a, b float64) float64 {
	diff, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).Float64()
	return diff
}

// Mul returns round2(a * b).
func Mul(a, b float64) float64 {
	product, _ := decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Round(2).Float64()
	return product
}
