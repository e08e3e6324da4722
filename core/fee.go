package core

import "time"

// DefaultRatePerDay is the fee charged per started rent day unless configured otherwise.
const DefaultRatePerDay int64 = 10

const rentDay = 24 * time.Hour

// RentDays returns the number of billed days for a rental: the whole days elapsed plus one,
// so a same-day return is billed as one day. A now before rentStart also bills one day.
func RentDays(rentStart, now time.Time) int64 {
	elapsed := now.Sub(rentStart)
	if elapsed < 0 {
		return 1
	}

	return int64(elapsed/rentDay) + 1
}

// RentalFee returns the amount due for the given number of days.
func RentalFee(rentDays, ratePerDay int64) int64 {
	return rentDays * ratePerDay
}
