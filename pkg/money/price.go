package money

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Price is a product price in either numeric or display-string form.
// A decoded Price keeps its JSON text and encodes back to it unchanged.
type Price struct {
	text    string
	amount  int64
	numeric bool
	raw     string
}

// NewPrice returns a numeric price.
func NewPrice(amount int64) Price {
	return Price{amount: amount, numeric: true}
}

// ParsePrice returns a display-string price, e.g. "₩15,000".
func ParsePrice(s string) Price {
	return Price{text: s, amount: ParseAmount(s)}
}

// ParseAmount parses whole currency units from s. Everything from the first
// '.' on is a fractional part and is dropped; of the rest only digits count,
// so "₩15,000" and "15,000원" both yield 15000 and "9.99" yields 9.
// Empty or overflowing input yields 0.
func ParseAmount(s string) int64 {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Amount returns the integer value of the price.
func (p Price) Amount() int64 {
	return p.amount
}

// IsNumeric reports whether the price was built from a number.
func (p Price) IsNumeric() bool {
	return p.numeric
}

// IsZero reports whether the price carries neither text nor amount.
func (p Price) IsZero() bool {
	return p.text == "" && p.amount == 0
}

// String returns the display text, or the formatted amount for numeric prices.
func (p Price) String() string {
	if p.numeric {
		return Won.Format(p.amount)
	}
	return p.text
}

// MarshalJSON encodes the price in the form it was created with.
func (p Price) MarshalJSON() ([]byte, error) {
	if p.raw != "" {
		return []byte(p.raw), nil
	}
	if p.numeric {
		return []byte(strconv.FormatInt(p.amount, 10)), nil
	}
	return json.Marshal(p.text)
}

// UnmarshalJSON accepts a JSON number, a JSON string, or null.
// A fractional number is truncated to whole units, matching ParseAmount.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Price{raw: string(data)}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ParsePrice(s)
		p.raw = string(data)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = NewPrice(0)
	if !math.IsNaN(f) && !math.IsInf(f, 0) && f < math.MaxInt64 && f > math.MinInt64 {
		p.amount = int64(math.Trunc(f))
	}
	p.raw = string(data)
	return nil
}
