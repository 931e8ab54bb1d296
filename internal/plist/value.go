package plist

import "time"

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindBytes
	KindTimestamp
	KindBool
	KindReal
	KindInteger
	KindArray
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBytes:
		return "data"
	case KindTimestamp:
		return "date"
	case KindBool:
		return "bool"
	case KindReal:
		return "real"
	case KindInteger:
		return "integer"
	case KindArray:
		return "array"
	case KindDict:
		return "dict"
	default:
		return "invalid"
	}
}

// Value is a decoded property-list node. The zero Value is KindInvalid.
type Value struct {
	kind  Kind
	str   string
	bytes []byte
	ts    time.Time
	b     bool
	real  float64
	i     int64
	array []Value
	dict  *Dict
}

func String(s string) Value { return Value{kind: KindString, str: s} }

func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

func Timestamp(t time.Time) Value { return Value{kind: KindTimestamp, ts: t} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Real(f float64) Value { return Value{kind: KindReal, real: f} }

func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

func Array(items ...Value) Value { return Value{kind: KindArray, array: items} }

func DictValue(d *Dict) Value { return Value{kind: KindDict, dict: d} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

func (v Value) AsBytes() ([]byte, bool) { return v.bytes, v.kind == KindBytes }

func (v Value) AsTime() (time.Time, bool) { return v.ts, v.kind == KindTimestamp }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsReal() (float64, bool) { return v.real, v.kind == KindReal }

func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInteger }

func (v Value) AsArray() ([]Value, bool) { return v.array, v.kind == KindArray }

func (v Value) AsDict() (*Dict, bool) {
	if v.kind != KindDict || v.dict == nil {
		return nil, false
	}
	return v.dict, true
}

// Truthy mirrors the loose presence checks property-list producers rely on:
// empty strings, zero numbers, false and empty collections are all false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindBytes:
		return len(v.bytes) > 0
	case KindTimestamp:
		return true
	case KindBool:
		return v.b
	case KindReal:
		return v.real != 0
	case KindInteger:
		return v.i != 0
	case KindArray:
		return len(v.array) > 0
	case KindDict:
		return v.dict != nil && v.dict.Len() > 0
	default:
		return false
	}
}

// Dict is a string-keyed mapping that remembers insertion order.
type Dict struct {
	keys   []string
	values map[string]Value
}

// NewDict returns an empty dictionary sized for n entries.
func NewDict(n int) *Dict {
	return &Dict{
		keys:   make([]string, 0, n),
		values: make(map[string]Value, n),
	}
}

// Set stores value under key. Overwriting keeps the key's original position.
func (d *Dict) Set(key string, value Value) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key is present, regardless of its value.
func (d *Dict) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Keys returns the keys in insertion order. The slice must not be modified.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return d.keys
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// String returns the string stored under key, or "" when absent or not a string.
func (d *Dict) String(key string) string {
	v, _ := d.Get(key)
	s, _ := v.AsString()
	return s
}

// Int returns the integer stored under key, or 0 when absent or not an integer.
func (d *Dict) Int(key string) int64 {
	v, _ := d.Get(key)
	i, _ := v.AsInt()
	return i
}
