package table

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind enumerates the closed set of cell value types. Row data arrives
// as arbitrary JSON; everything decodes into exactly one of these.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBool
	KindDate
)

// Value is a small sum type over null, text, number, bool and date.
// The zero value is null.
type Value struct {
	kind Kind
	text string
	num  float64
	b    bool
	date time.Time
}

func NullValue() Value {
	return Value{kind: KindNull}
}

func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func DateValue(t time.Time) Value {
	return Value{kind: KindDate, date: t}
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }
func (v Value) Text() string    { return v.text }
func (v Value) Number() float64 { return v.num }
func (v Value) Bool() bool      { return v.b }
func (v Value) Date() time.Time { return v.date }

// String returns the display form of the value. Null renders empty.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		return v.date.Format(time.RFC3339)
	}
	return ""
}

// Compare orders two values. Within a kind the natural ordering applies;
// across kinds the kind order decides, with null sorting first. Equal
// values compare to 0 so sorts stay stable.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		if v.kind < o.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case KindText:
		return strings.Compare(v.text, o.text)
	case KindNumber:
		switch {
		case v.num < o.num:
			return -1
		case v.num > o.num:
			return 1
		}
	case KindBool:
		switch {
		case !v.b && o.b:
			return -1
		case v.b && !o.b:
			return 1
		}
	case KindDate:
		switch {
		case v.date.Before(o.date):
			return -1
		case v.date.After(o.date):
			return 1
		}
	}
	return 0
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindDate:
		return json.Marshal(v.date.Format(time.RFC3339))
	}
	return []byte("null"), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// FromAny converts a JSON-decoded value into a Value. Unsupported shapes
// (objects, arrays) flatten to their text form.
func FromAny(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return NullValue()
	case string:
		return TextValue(x)
	case bool:
		return BoolValue(x)
	case float64:
		return NumberValue(x)
	case int:
		return NumberValue(float64(x))
	case int64:
		return NumberValue(float64(x))
	case time.Time:
		return DateValue(x)
	default:
		return TextValue(fmt.Sprintf("%v", x))
	}
}
