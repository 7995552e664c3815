// Package yaml implements a wire.TokenSource backed by gopkg.in/yaml.v3,
// letting the resolver ingest YAML documents (Kubernetes-style manifests,
// config files) carrying the same "@id"/"@ref"/"@type"/"@keys"/"@items"
// markers as the JSON driver. It decodes the whole document into a
// yaml.Node tree up front (yaml.v3 has no true streaming decoder) and then
// replays it as a flat token slice, the same Kind vocabulary
// internal/wire's decoder already understands.
package yaml

import (
	"bytes"
	"io"
	"strconv"

	wire "github.com/objectwire/objectwire/internal/wire"
	yamlv3 "gopkg.in/yaml.v3"
)

type yamlSource struct {
	tokens []wire.Token
	pos    int
}

// NewReader wraps an io.Reader into a wire.TokenSource for a single YAML
// document.
func NewReader(r io.Reader) (wire.TokenSource, error) {
	var root yamlv3.Node
	if err := yamlv3.NewDecoder(r).Decode(&root); err != nil {
		return nil, err
	}
	s := &yamlSource{}
	s.flatten(&root)
	return s, nil
}

// NewBytes wraps a byte slice into a wire.TokenSource for YAML.
func NewBytes(b []byte) (wire.TokenSource, error) { return NewReader(bytes.NewReader(b)) }

func (s *yamlSource) flatten(n *yamlv3.Node) {
	switch n.Kind {
	case yamlv3.DocumentNode:
		for _, c := range n.Content {
			s.flatten(c)
		}
	case yamlv3.MappingNode:
		s.emit(wire.Token{Kind: wire.KindBeginObject})
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			s.emit(wire.Token{Kind: wire.KindKey, String: key.Value})
			s.flatten(n.Content[i+1])
		}
		s.emit(wire.Token{Kind: wire.KindEndObject})
	case yamlv3.SequenceNode:
		s.emit(wire.Token{Kind: wire.KindBeginArray})
		for _, c := range n.Content {
			s.flatten(c)
		}
		s.emit(wire.Token{Kind: wire.KindEndArray})
	case yamlv3.AliasNode:
		s.flatten(n.Alias)
	case yamlv3.ScalarNode:
		s.emitScalar(n)
	default:
		s.emit(wire.Token{Kind: wire.KindNull})
	}
}

func (s *yamlSource) emitScalar(n *yamlv3.Node) {
	switch n.Tag {
	case "!!null":
		s.emit(wire.Token{Kind: wire.KindNull})
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			s.emit(wire.Token{Kind: wire.KindString, String: n.Value})
			return
		}
		s.emit(wire.Token{Kind: wire.KindBool, Bool: b})
	case "!!int", "!!float":
		if _, err := strconv.ParseFloat(n.Value, 64); err == nil {
			s.emit(wire.Token{Kind: wire.KindNumber, Number: n.Value})
			return
		}
		s.emit(wire.Token{Kind: wire.KindString, String: n.Value})
	default:
		s.emit(wire.Token{Kind: wire.KindString, String: n.Value})
	}
}

func (s *yamlSource) emit(t wire.Token) {
	t.Offset = int64(len(s.tokens))
	s.tokens = append(s.tokens, t)
}

func (s *yamlSource) NextToken() (wire.Token, error) {
	if s.pos >= len(s.tokens) {
		return wire.Token{}, io.EOF
	}
	t := s.tokens[s.pos]
	s.pos++
	return t, nil
}

func (s *yamlSource) Location() int64 {
	if s.pos == 0 {
		return 0
	}
	return s.tokens[s.pos-1].Offset
}
