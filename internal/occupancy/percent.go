package occupancy

import "github.com/shopspring/decimal"

const percentPlaces = 2

var hundred = decimal.NewFromInt(100) //nolint:gomnd

// share returns part/whole*100 without rounding.
func share(part, whole int) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(whole)))
}

// rounded applies half to even rounding on two places.
func rounded(p decimal.Decimal) float64 {
	return p.RoundBank(percentPlaces).InexactFloat64()
}

// mean averages exact shares and rounds once.
func mean(values []decimal.Decimal) float64 {
	if len(values) == 0 {
		return 0
	}

	return rounded(decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values)))))
}
