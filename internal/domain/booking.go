package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var ErrBadBookingDate = errors.New("bookingDate must be a date or date-time")

// bookingDateLayouts are tried in order when parsing client input. Layouts
// without a zone are taken as UTC; date-only input becomes midnight UTC.
var bookingDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// BookingTime is a reservation timestamp. Whatever the input precision, the
// wire format is ISO-8601 UTC with second precision and a trailing Z.
type BookingTime struct {
	time.Time
}

func NewBookingTime(t time.Time) BookingTime {
	return BookingTime{t.UTC().Truncate(time.Second)}
}

func ParseBookingTime(s string) (BookingTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range bookingDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return NewBookingTime(t), nil
		}
	}
	return BookingTime{}, ErrBadBookingDate
}

func (b BookingTime) String() string {
	return b.UTC().Format("2006-01-02T15:04:05Z")
}

func (b BookingTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *BookingTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrBadBookingDate
	}
	parsed, err := ParseBookingTime(s)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

type Booking struct {
	ID             int64
	Name           string
	NoOfGuests     int
	BookingDate    BookingTime
	ReminderSentAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
