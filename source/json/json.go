// Package json implements a wire.TokenSource backed by encoding/json.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	wire "github.com/objectwire/objectwire/internal/wire"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type dupFrame struct {
	kind containerKind
	// duplicate-key detection happens at the enforcement layer, not here.
	expectingKey bool
}

type jsonSource struct {
	dec        *json.Decoder
	stack      []dupFrame
	lastOffset int64
}

// NewReader wraps an io.Reader into a wire.TokenSource for JSON.
func NewReader(r io.Reader) wire.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, stack: nil, lastOffset: -1}
}

// NewBytes wraps a byte slice into a wire.TokenSource for JSON.
func NewBytes(b []byte) wire.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (wire.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return wire.Token{}, io.EOF
		}
		return wire.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, dupFrame{kind: kindObject, expectingKey: true})
			return wire.Token{Kind: wire.KindBeginObject, Offset: s.lastOffset}, nil
		case '}':
			s.popAndFlip()
			return wire.Token{Kind: wire.KindEndObject, Offset: s.lastOffset}, nil
		case '[':
			s.stack = append(s.stack, dupFrame{kind: kindArray})
			return wire.Token{Kind: wire.KindBeginArray, Offset: s.lastOffset}, nil
		case ']':
			s.popAndFlip()
			return wire.Token{Kind: wire.KindEndArray, Offset: s.lastOffset}, nil
		}
	case string:
		if s.expectingKey() {
			s.clearExpectingKey()
			return wire.Token{Kind: wire.KindKey, String: v, Offset: s.lastOffset}, nil
		}
		s.flipExpectingKey()
		return wire.Token{Kind: wire.KindString, String: v, Offset: s.lastOffset}, nil
	case bool:
		s.flipExpectingKey()
		return wire.Token{Kind: wire.KindBool, Bool: v, Offset: s.lastOffset}, nil
	case json.Number:
		s.flipExpectingKey()
		return wire.Token{Kind: wire.KindNumber, Number: string(v), Offset: s.lastOffset}, nil
	case float64:
		s.flipExpectingKey()
		return wire.Token{Kind: wire.KindNumber, Number: formatFloat(v), Offset: s.lastOffset}, nil
	case nil:
		s.flipExpectingKey()
		return wire.Token{Kind: wire.KindNull, Offset: s.lastOffset}, nil
	}

	s.flipExpectingKey()
	return wire.Token{Kind: wire.KindNull, Offset: s.lastOffset}, nil
}

func (s *jsonSource) expectingKey() bool {
	n := len(s.stack)
	return n > 0 && s.stack[n-1].kind == kindObject && s.stack[n-1].expectingKey
}

func (s *jsonSource) clearExpectingKey() {
	if n := len(s.stack); n > 0 {
		s.stack[n-1].expectingKey = false
	}
}

func (s *jsonSource) flipExpectingKey() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *jsonSource) popAndFlip() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.flipExpectingKey()
}

func (s *jsonSource) Location() int64 { return s.lastOffset }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
