package folio

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Quantity is an exact number read from the data files: share counts and prices.
//
// Its zero value means "absent" as well as zero, data files never distinguish them.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

func (t Quantity) Equal(p Quantity) bool       { return t.value.Equal(p.value) }
func (t Quantity) Mul(p Quantity) Quantity     { return Quantity{value: t.value.Mul(p.value)} }
func (t Quantity) IsPositive() bool            { return t.value.IsPositive() }
func (t Quantity) IsZero() bool                { return t.value.IsZero() }
func (t Quantity) Float() float64              { return t.value.InexactFloat64() }
func (t Quantity) Decimal() decimal.Decimal    { return t.value }
func (t Quantity) GreaterThan(p Quantity) bool { return t.value.GreaterThan(p.value) }

// String returns the decimal representation, "" for zero.
func (t Quantity) String() string {
	if t.value.IsZero() {
		return ""
	}
	return t.value.String()
}

// MarshalJSON implements the json.Marshaler interface.
func (t Quantity) MarshalJSON() ([]byte, error) {
	return t.value.MarshalJSON()
}

// UnmarshalJSON accepts numbers and numeric strings. null and "" decode to zero.
func (t *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if s := string(data); s == "null" || strings.TrimSpace(strings.Trim(s, `"`)) == "" {
		t.value = decimal.Zero
		return nil
	}
	if data[0] == '"' {
		// tolerate padded numeric strings like " 150 "
		v, err := decimal.NewFromString(strings.TrimSpace(strings.Trim(string(data), `"`)))
		if err != nil {
			return err
		}
		t.value = v
		return nil
	}
	return t.value.UnmarshalJSON(data)
}
