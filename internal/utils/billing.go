package utils

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		// Check for leap year
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}

	// Months with 30 days: April, June, September, November
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}

	// All other months have 31 days
	return 31
}

// ClampDay clamps an anchor day to the length of the target month, so a
// member who joined on the 31st is due on the 28th/29th/30th in shorter
// months.
func ClampDay(year, month, day int) int {
	if max := DaysInMonth(year, month); day > max {
		return max
	}
	return day
}

// DueDate returns the due date for a service month, anchored to the
// member's joining day (clamped to the month length). The time of day is
// normalized to midnight UTC.
func DueDate(dateOfJoining time.Time, serviceMonth, serviceYear int) time.Time {
	day := ClampDay(serviceYear, serviceMonth, dateOfJoining.Day())
	return time.Date(serviceYear, time.Month(serviceMonth), day, 0, 0, 0, 0, time.UTC)
}

// OverdueDate returns the date after which an unpaid payment for the
// service month counts as overdue.
func OverdueDate(dueDate time.Time, graceDays int) time.Time {
	return dueDate.AddDate(0, 0, graceDays)
}

// NextServiceMonth returns the (month, year) following the given service
// month.
func NextServiceMonth(month, year int) (int, int) {
	if month == 12 {
		return 1, year + 1
	}
	return month + 1, year
}

// FirstServiceMonth returns the billing period of a member's first
// payment: the month of joining.
func FirstServiceMonth(dateOfJoining time.Time) (int, int) {
	return int(dateOfJoining.Month()), dateOfJoining.Year()
}

// StayDays returns the billable days for a short-term stay. Partial days
// round up; a same-day stay bills zero days.
func StayDays(joining, relieving time.Time) (int, error) {
	if relieving.Before(joining) {
		return 0, fmt.Errorf("relieving date must not be before joining date")
	}
	hours := relieving.Sub(joining).Hours()
	days := int(hours / 24)
	if float64(days)*24 < hours {
		days++
	}
	return days, nil
}

// ShortTermAmount returns the upfront charge for a short-term stay:
// billable days times the per-day rate.
func ShortTermAmount(joining, relieving time.Time, pricePerDay decimal.Decimal) (decimal.Decimal, error) {
	days, err := StayDays(joining, relieving)
	if err != nil {
		return decimal.Zero, err
	}
	return pricePerDay.Mul(decimal.NewFromInt(int64(days))), nil
}

// PreviousMonth returns the (month, year) before the given month.
func PreviousMonth(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}
