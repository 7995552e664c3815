package objectwire

import (
	"io"

	wire "github.com/objectwire/objectwire/internal/wire"
	jsonsrc "github.com/objectwire/objectwire/source/json"
	yamlsrc "github.com/objectwire/objectwire/source/yaml"
)

// Source is the token-producing collaborator that feeds the Node builder,
// an external tokenizer/parser contract; concrete formats (source/json,
// source/gojson, source/yaml) implement it.
type Source = wire.TokenSource

// JSONDriver abstracts which JSON tokenizer backs JSONBytes/JSONReader.
// Swappable via SetJSONDriver, so source/gojson can be opted into with a
// build tag instead of an unconditional dependency on goccy/go-json.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

type stdJSONDriver struct{}

func (stdJSONDriver) NewReader(r io.Reader) Source { return jsonsrc.NewReader(r) }
func (stdJSONDriver) NewBytes(b []byte) Source      { return jsonsrc.NewBytes(b) }
func (stdJSONDriver) Name() string                  { return "encoding/json" }

var activeJSONDriver JSONDriver = stdJSONDriver{}

// SetJSONDriver swaps the JSON tokenizer used by JSONBytes/JSONReader.
func SetJSONDriver(d JSONDriver) {
	if d != nil {
		activeJSONDriver = d
	}
}

// UseDefaultJSONDriver restores the encoding/json-backed driver.
func UseDefaultJSONDriver() { activeJSONDriver = stdJSONDriver{} }

// JSONBytes builds a Source over an in-memory JSON document.
func JSONBytes(b []byte) Source { return activeJSONDriver.NewBytes(b) }

// JSONReader builds a Source streaming JSON tokens from r.
func JSONReader(r io.Reader) Source { return activeJSONDriver.NewReader(r) }

// YAMLBytes builds a Source over an in-memory YAML document. Unlike the
// JSON drivers, yaml.v3 has no incremental token API: the whole document is
// parsed up front, so this can fail at construction time rather than
// lazily on the first NextToken call.
func YAMLBytes(b []byte) (Source, error) { return yamlsrc.NewBytes(b) }

// YAMLReader builds a Source over a YAML document read from r.
func YAMLReader(r io.Reader) (Source, error) { return yamlsrc.NewReader(r) }
