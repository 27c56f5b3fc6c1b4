package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-04-16 13:00:00", "2025-04-16T13:00:00Z"},
		{"2025-04-16T13:00:00", "2025-04-16T13:00:00Z"},
		{"2025-04-16T13:00:00Z", "2025-04-16T13:00:00Z"},
		{"2025-04-16", "2025-04-16T00:00:00Z"},
		{"2025-04-16T15:00:00+02:00", "2025-04-16T13:00:00Z"},
	}
	for _, tc := range cases {
		got, err := ParseBookingTime(tc.in)
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got.String(), tc.in)
	}
}

func TestParseBookingTime_Invalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "16/04/2025", "2025-13-40"} {
		_, err := ParseBookingTime(in)
		assert.Error(t, err, in)
	}
}

func TestBookingTime_MarshalJSON(t *testing.T) {
	bt := NewBookingTime(time.Date(2025, 4, 16, 13, 0, 0, 0, time.UTC))
	data, err := json.Marshal(bt)
	assert.NoError(t, err)
	assert.Equal(t, `"2025-04-16T13:00:00Z"`, string(data))
}

func TestBookingTime_RoundTrip(t *testing.T) {
	var bt BookingTime
	assert.NoError(t, json.Unmarshal([]byte(`"2025-04-16"`), &bt))

	out, err := json.Marshal(bt)
	assert.NoError(t, err)
	assert.Equal(t, `"2025-04-16T00:00:00Z"`, string(out))
}

func TestNewBookingTime_TruncatesToSeconds(t *testing.T) {
	bt := NewBookingTime(time.Date(2025, 4, 16, 13, 0, 0, 987654321, time.UTC))
	assert.Equal(t, "2025-04-16T13:00:00Z", bt.String())
}
