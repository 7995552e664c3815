//go:build gojson

package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	objectwire "github.com/objectwire/objectwire"
	wire "github.com/objectwire/objectwire/internal/wire"
)

// Driver returns an objectwire.JSONDriver backed by goccy/go-json.
func Driver() objectwire.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) objectwire.Source { return NewReader(r) }
func (driverGoJSON) NewBytes(b []byte) objectwire.Source      { return NewBytes(b) }
func (driverGoJSON) Name() string                             { return "go-json" }

// ---- wire.TokenSource implementation using go-json's Decoder ----

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

// NewReader wraps an io.Reader into a wire.TokenSource for JSON using go-json.
func NewReader(r io.Reader) wire.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into a wire.TokenSource for JSON using go-json.
func NewBytes(b []byte) wire.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (wire.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return wire.Token{}, io.EOF
		}
		return wire.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return wire.Token{Kind: wire.KindBeginObject, Offset: -1}, nil
		case '}':
			s.popAndFlip()
			return wire.Token{Kind: wire.KindEndObject, Offset: -1}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return wire.Token{Kind: wire.KindBeginArray, Offset: -1}, nil
		case ']':
			s.popAndFlip()
			return wire.Token{Kind: wire.KindEndArray, Offset: -1}, nil
		}
	case string:
		if s.expectingKey() {
			s.clearExpectingKey()
			return wire.Token{Kind: wire.KindKey, String: v, Offset: -1}, nil
		}
		s.flipExpectingKey()
		return wire.Token{Kind: wire.KindString, String: v, Offset: -1}, nil
	case bool:
		s.flipExpectingKey()
		return wire.Token{Kind: wire.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		s.flipExpectingKey()
		return wire.Token{Kind: wire.KindNumber, Number: string(v), Offset: -1}, nil
	case float64:
		s.flipExpectingKey()
		return wire.Token{Kind: wire.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}, nil
	case nil:
		s.flipExpectingKey()
		return wire.Token{Kind: wire.KindNull, Offset: -1}, nil
	}
	s.flipExpectingKey()
	return wire.Token{Kind: wire.KindNull, Offset: -1}, nil
}

func (s *source) expectingKey() bool {
	n := len(s.stack)
	return n > 0 && s.stack[n-1].kind == kindObject && s.stack[n-1].expectingKey
}

func (s *source) clearExpectingKey() {
	if n := len(s.stack); n > 0 {
		s.stack[n-1].expectingKey = false
	}
}

func (s *source) flipExpectingKey() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *source) popAndFlip() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.flipExpectingKey()
}

func (s *source) Location() int64 { return -1 }
