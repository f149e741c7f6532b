package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which member of the Value union is populated.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindMap
	KindList
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is one entry of a free-form key/value bag such as StreamUpdate.Metadata
// or an entry of StreamUpdate.ToolCalls. The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	raw  string // JSON text of a decoded number, kept so large integers round-trip
	b    bool
	m    Fields
	list []Value
}

// Fields is a dynamically-keyed bag of values. A nil Fields means the bag is absent.
type Fields map[string]Value

// Get returns the value stored under key. It is safe to call on a nil Fields.
func (f Fields) Get(key string) (Value, bool) {
	if f == nil {
		return Value{}, false
	}
	v, ok := f[key]
	return v, ok
}

// present reports whether the bag carries anything at all.
// Empty bags are treated the same as missing ones.
func (f Fields) present() bool {
	return len(f) > 0
}

// Null returns the null Value.
func Null() Value { return Value{} }

// String wraps s.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps f.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Map wraps a nested bag.
func Map(f Fields) Value { return Value{kind: KindMap, m: f} }

// List wraps an ordered sequence of values.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Of converts a plain Go value into a Value. Types outside the union are
// stored as their %v text.
func Of(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case Fields:
		return Map(x)
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case float32:
		return Number(float64(x))
	case float64:
		return Number(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return String(x.String())
		}
		return Value{kind: KindNumber, num: f, raw: x.String()}
	case map[string]any:
		return Map(FieldsOf(x))
	case []any:
		items := make([]Value, 0, len(x))
		for _, item := range x {
			items = append(items, Of(item))
		}
		return List(items...)
	case []Value:
		return List(x...)
	default:
		return String(fmt.Sprintf("%v", x))
	}
}

// FieldsOf converts a plain map into Fields. A nil map yields nil Fields.
func FieldsOf(m map[string]any) Fields {
	if m == nil {
		return nil
	}
	f := make(Fields, len(m))
	for k, v := range m {
		f[k] = Of(v)
	}
	return f
}

// Kind reports which member of the union is set.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString returns the string payload if v holds a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsNumber returns the numeric payload if v holds a number.
func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsInt64 returns the numeric payload as an int64 if v holds an integral
// number in range. Decoded integers beyond 2^53 keep their exact value.
func (v Value) AsInt64() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	if v.raw != "" {
		if n, err := strconv.ParseInt(v.raw, 10, 64); err == nil {
			return n, true
		}
	}
	if v.num != math.Trunc(v.num) || v.num < math.MinInt64 || v.num >= math.MaxInt64 {
		return 0, false
	}
	return int64(v.num), true
}

// AsBool returns the boolean payload if v holds a bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsMap returns the nested bag if v holds one.
func (v Value) AsMap() (Fields, bool) {
	if v.kind != KindMap {
		return nil, false
	}
	return v.m, true
}

// AsList returns the items if v holds a list.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// Truthy reports whether v counts as set: null, false, zero, "" and empty
// containers are all falsy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindNumber:
		return v.num != 0
	case KindBool:
		return v.b
	case KindMap:
		return len(v.m) > 0
	case KindList:
		return len(v.list) > 0
	default:
		return false
	}
}

// Text renders v as a string. Strings are returned as-is, everything else in
// its JSON form.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNull:
		return ""
	case KindNumber:
		if v.raw != "" {
			return v.raw
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// Interface converts v back into plain Go values (map[string]any, []any,
// string, float64, bool or nil).
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, item := range v.m {
			out[k] = item.Interface()
		}
		return out
	case KindList:
		out := make([]any, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.Interface())
		}
		return out
	default:
		return nil
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.kind == KindNull {
		return "null"
	}
	return v.Text()
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if v.raw != "" {
			return []byte(v.raw), nil
		}
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindMap:
		if v.m == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(map[string]Value(v.m))
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	*v = Of(raw)
	return nil
}

// Keys returns the keys of f in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders f as key=value pairs in key order.
func (f Fields) String() string {
	if f == nil {
		return "<nil>"
	}
	parts := make([]string, 0, len(f))
	for _, k := range f.Keys() {
		parts = append(parts, k+"="+f[k].String())
	}
	return "{" + strings.Join(parts, " ") + "}"
}
