package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// Schedule substrings recognized in the free-text recurrence field.
	ScheduleAnnual     = "annually"
	ScheduleSemiAnnual = "semi-annually"
)

type (
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Donation is one row of the donation export. PayeeID is the stable
	// grouping key; Organization is a display name that may vary across rows
	// for the same payee.
	Donation struct {
		PayeeID      string
		Organization string
		Sector       string
		Amount       Money
		Date         Date
		Schedule     string // free-text recurrence field, e.g. "annually through indefinitely"
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyPayeeID  = errors.New("empty payee id")
)

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// dateLayouts are the formats accepted on input. Exports use US-style
// dates; ISO is accepted for hand-edited files.
var dateLayouts = []string{"01/02/2006", "1/2/2006", "2006-01-02"}

// ParseDate parses a transaction date string.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, ErrInvalidDate
}

// String renders the date in the US style used throughout the reports.
func (d Date) String() string {
	return d.Time.Format("01/02/2006")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (d Donation) Validate() error {
	if strings.TrimSpace(d.PayeeID) == "" {
		return ErrEmptyPayeeID
	}
	if err := d.Date.Validate(); err != nil {
		return err
	}
	return d.Amount.Validate()
}

// Year returns the derived calendar year of the donation.
func (d Donation) Year() int {
	return d.Date.Year()
}

// ScheduleIsRecurring reports whether the free-text schedule field marks the
// donation as annual or semi-annual. Matching is case-insensitive and
// substring-based.
func (d Donation) ScheduleIsRecurring() bool {
	s := strings.ToLower(d.Schedule)
	return strings.Contains(s, ScheduleAnnual) || strings.Contains(s, ScheduleSemiAnnual)
}
