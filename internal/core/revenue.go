package core

// RevenuePoint is the revenue booked in a single period (usually a month).
type RevenuePoint struct {
	Period string
	Amount Money
}

// MaxRevenue returns the largest amount in the series, or zero.
func MaxRevenue(series []RevenuePoint) Money {
	var max Money
	for _, p := range series {
		if p.Amount.Cents > max.Cents {
			max = p.Amount
		}
	}
	return max
}
