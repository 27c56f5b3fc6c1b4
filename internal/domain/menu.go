package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Price is a fixed-point money amount kept in hundredths. On the wire it is
// always a two-place decimal string, never a binary float.
type Price int64

var ErrBadPrice = errors.New("price must be a decimal number with at most 2 decimal places")

// ParsePrice accepts "15.99", "15.9", "15" and an optional leading minus.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrBadPrice
	}

	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && frac == "") || len(frac) > 2 {
		return 0, ErrBadPrice
	}

	var cents int64
	for _, r := range whole {
		if r < '0' || r > '9' {
			return 0, ErrBadPrice
		}
		if cents > (math.MaxInt64-9)/10 {
			return 0, ErrBadPrice
		}
		cents = cents*10 + int64(r-'0')
	}
	if cents > (math.MaxInt64-99)/100 {
		return 0, ErrBadPrice
	}
	cents *= 100
	for i, r := range frac {
		if r < '0' || r > '9' {
			return 0, ErrBadPrice
		}
		m := int64(10)
		if i == 1 {
			m = 1
		}
		cents += int64(r-'0') * m
	}
	if neg {
		cents = -cents
	}
	return Price(cents), nil
}

func (p Price) String() string {
	cents := int64(p)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts both `"15.99"` and `15.99`.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var quoted string
		if err := json.Unmarshal(data, &quoted); err != nil {
			return ErrBadPrice
		}
		s = quoted
	}
	parsed, err := ParsePrice(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

type MenuItem struct {
	ID        int64
	Title     string
	Price     Price
	Inventory int
	CreatedAt time.Time
	UpdatedAt time.Time
}
