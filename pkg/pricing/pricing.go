package pricing

import "github.com/shopspring/decimal"

// weeksPerMonth approximates the number of delivery weeks in a month.
var weeksPerMonth = decimal.RequireFromString("4.3")

// MonthlyTotal computes the monthly subscription price in currency minor
// units: basePrice x mealTypes x deliveryDays x 4.3, rounded to the nearest
// whole unit. The result is always computed server-side and never trusted
// from the client.
func MonthlyTotal(basePrice int64, mealTypes, deliveryDays int) int64 {
	total := decimal.NewFromInt(basePrice).
		Mul(decimal.NewFromInt(int64(mealTypes))).
		Mul(decimal.NewFromInt(int64(deliveryDays))).
		Mul(weeksPerMonth)
	return total.Round(0).IntPart()
}
