package money_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/storefront/pkg/money"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int64
	}{
		{"₩15,000", 15000},
		{"15,000원", 15000},
		{"15000", 15000},
		{"9.99", 9},
		{"$1,234.50", 1234},
		{"", 0},
		{"free", 0},
		{"99999999999999999999999", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, money.ParseAmount(tt.in))
		})
	}
}

func TestPrice_JSON(t *testing.T) {
	t.Parallel()

	t.Run("string form survives round trip", func(t *testing.T) {
		t.Parallel()
		var p money.Price
		require.NoError(t, json.Unmarshal([]byte(`"₩15,000"`), &p))
		assert.Equal(t, int64(15000), p.Amount())
		assert.False(t, p.IsNumeric())
		assert.Equal(t, "₩15,000", p.String())

		out, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, `"₩15,000"`, string(out))
	})

	t.Run("numeric form survives round trip", func(t *testing.T) {
		t.Parallel()
		var p money.Price
		require.NoError(t, json.Unmarshal([]byte(`25000`), &p))
		assert.Equal(t, int64(25000), p.Amount())
		assert.True(t, p.IsNumeric())

		out, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Equal(t, `25000`, string(out))
	})

	t.Run("null survives round trip", func(t *testing.T) {
		t.Parallel()
		var p money.Price
		require.NoError(t, json.Unmarshal([]byte(`null`), &p))
		assert.True(t, p.IsZero())

		out, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Equal(t, `null`, string(out))
	})

	t.Run("fractional number keeps its text and truncates", func(t *testing.T) {
		t.Parallel()
		var p money.Price
		require.NoError(t, json.Unmarshal([]byte(`9.99`), &p))
		assert.Equal(t, int64(9), p.Amount())

		out, err := json.Marshal(p)
		require.NoError(t, err)
		assert.Equal(t, `9.99`, string(out))
	})

	t.Run("number and string agree on decimals", func(t *testing.T) {
		t.Parallel()
		var num, str money.Price
		require.NoError(t, json.Unmarshal([]byte(`1999.6`), &num))
		require.NoError(t, json.Unmarshal([]byte(`"1999.6"`), &str))
		assert.Equal(t, int64(1999), num.Amount())
		assert.Equal(t, num.Amount(), str.Amount())
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		var p money.Price
		assert.Error(t, json.Unmarshal([]byte(`{}`), &p))
	})
}

func TestFormatter(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "15,000원", money.Won.Format(15000))
	assert.Equal(t, "0원", money.Won.Format(0))
	assert.Equal(t, "15,000원", money.NewPrice(15000).String())

	usd := money.NewFormatter(language.English, money.WithPrefix("$"))
	assert.Equal(t, "$1,234,567", usd.Format(1234567))

	assert.NotEmpty(t, money.FormatCurrency(language.English, currency.USD, 12))
}
