//go:build !gojson

package gojson

import (
	"io"

	objectwire "github.com/objectwire/objectwire"
	jsonsrc "github.com/objectwire/objectwire/source/json"
)

// Driver returns a stub driver description when the gojson build tag is not
// enabled. It delegates to the encoding/json-based source directly, so
// importing this package never pulls in goccy/go-json transitively.
func Driver() objectwire.JSONDriver { return stub{} }

type stub struct{}

func (stub) NewReader(r io.Reader) objectwire.Source { return jsonsrc.NewReader(r) }
func (stub) NewBytes(b []byte) objectwire.Source      { return jsonsrc.NewBytes(b) }
func (stub) Name() string                             { return "encoding/json (gojson stub)" }
