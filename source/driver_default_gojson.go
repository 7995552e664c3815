//go:build gojson

// Package source wires the go-json driver in as the default JSON driver. It
// lives apart from the root package to avoid an import cycle: root does not
// import source/gojson, but source/gojson imports root to implement
// objectwire.JSONDriver.
package source

import (
	objectwire "github.com/objectwire/objectwire"
	drvgojson "github.com/objectwire/objectwire/source/gojson"
)

func init() { objectwire.SetJSONDriver(drvgojson.Driver()) }
