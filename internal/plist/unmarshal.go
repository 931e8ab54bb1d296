package plist

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var digitRuns = regexp.MustCompile(`\d+`)

// unmarshalers holds one rule per known tag. Each rule sees only the closed
// element's own text and already-decoded children.
var unmarshalers = map[string]func(*frame) (Value, error){
	"array":   unmarshalArray,
	"dict":    unmarshalDict,
	"key":     unmarshalText,
	"string":  unmarshalText,
	"data":    unmarshalData,
	"date":    unmarshalDate,
	"true":    func(*frame) (Value, error) { return Bool(true), nil },
	"false":   func(*frame) (Value, error) { return Bool(false), nil },
	"real":    unmarshalReal,
	"integer": unmarshalInteger,
}

func unmarshalArray(f *frame) (Value, error) {
	items := f.children
	if items == nil {
		items = []Value{}
	}
	return Array(items...), nil
}

func unmarshalDict(f *frame) (Value, error) {
	if len(f.children)%2 != 0 {
		return Value{}, fmt.Errorf("dict has %d children, want key/value pairs", len(f.children))
	}
	dict := NewDict(len(f.children) / 2)
	for i := 0; i < len(f.children); i += 2 {
		key, ok := f.children[i].AsString()
		if !ok {
			return Value{}, fmt.Errorf("dict entry %d: key is %s, want string", i/2, f.children[i].Kind())
		}
		dict.Set(key, f.children[i+1])
	}
	return DictValue(dict), nil
}

func unmarshalText(f *frame) (Value, error) {
	return String(f.text.String()), nil
}

func unmarshalData(f *frame) (Value, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, f.text.String())
	decoded, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return Value{}, fmt.Errorf("decode base64: %w", err)
	}
	return Bytes(decoded), nil
}

// unmarshalDate reads digit runs positionally as year, month, day, hour,
// minute, second. No zone is applied; UTC stands in as the neutral location.
func unmarshalDate(f *frame) (Value, error) {
	runs := digitRuns.FindAllString(f.text.String(), -1)
	if len(runs) < 3 || len(runs) > 6 {
		return Value{}, fmt.Errorf("date %q: want 3 to 6 numeric fields, got %d", f.text.String(), len(runs))
	}
	var parts [6]int
	for i, run := range runs {
		n, err := strconv.Atoi(run)
		if err != nil {
			return Value{}, fmt.Errorf("date field %q: %w", run, err)
		}
		parts[i] = n
	}
	ts := time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], 0, time.UTC)
	return Timestamp(ts), nil
}

func unmarshalReal(f *frame) (Value, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(f.text.String()), 64)
	if err != nil {
		return Value{}, fmt.Errorf("parse real: %w", err)
	}
	return Real(n), nil
}

func unmarshalInteger(f *frame) (Value, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(f.text.String()), 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("parse integer: %w", err)
	}
	return Integer(n), nil
}
