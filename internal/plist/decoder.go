package plist

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const rootTag = "plist"

var (
	// ErrUnknownTag reports an element outside the property-list grammar.
	ErrUnknownTag = errors.New("unknown plist tag")
	// ErrEmptyDocument reports a document without a root value.
	ErrEmptyDocument = errors.New("plist document has no root value")
)

// DecodeError describes a fatal problem with one element of the document.
type DecodeError struct {
	Tag    string
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("plist: <%s> at offset %d: %v", e.Tag, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// frame is an open element. Text is collected only until the first child
// arrives, which is all any leaf rule ever reads.
type frame struct {
	tag      string
	text     strings.Builder
	children []Value
}

// Decode reads one XML property list from r and returns its root value.
func Decode(r io.Reader) (Value, error) {
	dec := xml.NewDecoder(r)

	var (
		stack    []*frame
		root     Value
		haveRoot bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Value{}, fmt.Errorf("parse plist xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, &frame{tag: t.Name.Local})
		case xml.CharData:
			if n := len(stack); n > 0 && len(stack[n-1].children) == 0 {
				stack[n-1].text.Write(t)
			}
		case xml.EndElement:
			n := len(stack)
			top := stack[n-1]
			stack[n-1] = nil
			stack = stack[:n-1]

			value, err := fold(top)
			if err != nil {
				return Value{}, &DecodeError{Tag: top.tag, Offset: dec.InputOffset(), Err: err}
			}
			if len(stack) == 0 {
				root, haveRoot = value, true
				continue
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, value)
		}
	}

	if !haveRoot || root.Kind() == KindInvalid {
		return Value{}, ErrEmptyDocument
	}
	return root, nil
}

// DecodeFile decodes the property list stored at path.
func DecodeFile(path string) (Value, error) {
	file, err := os.Open(path)
	if err != nil {
		return Value{}, fmt.Errorf("open plist: %w", err)
	}
	defer file.Close()
	return Decode(bufio.NewReaderSize(file, 64*1024))
}

func fold(f *frame) (Value, error) {
	if unmarshal, ok := unmarshalers[f.tag]; ok {
		return unmarshal(f)
	}
	if f.tag == rootTag {
		if len(f.children) == 0 {
			return Value{}, nil
		}
		return f.children[0], nil
	}
	return Value{}, ErrUnknownTag
}
