package domain

import (
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day serialised as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate builds a Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysUntil returns the number of whole days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

// Reservation is an immutable booking of a destination by a user.
type Reservation struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	DestinationID int64     `json:"destination_id"`
	People        int       `json:"people"`
	CheckIn       Date      `json:"check_in"`
	CheckOut      Date      `json:"check_out"`
	TotalPrice    float64   `json:"total_price"`
	CreatedAt     time.Time `json:"created_at"`
}

// Stay returns the number of days between check-in and check-out, or
// ErrInvalidDateRange when check-out is not after check-in.
func Stay(checkIn, checkOut Date) (int, error) {
	days := checkIn.DaysUntil(checkOut)
	if days <= 0 {
		return 0, ErrInvalidDateRange
	}
	return days, nil
}

// TotalPrice is price per person per day times people times days.
func TotalPrice(unitPrice float64, people, days int) float64 {
	return unitPrice * float64(people) * float64(days)
}
