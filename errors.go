package objectwire

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes. The six resolver-specific kinds are the ones the
// Resolver itself raises; the rest cover the ambient wire-decoding and
// configuration concerns (duplicate object keys, truncation, dependency
// injection failures for factories).
const (
	// Resolver fault taxonomy.
	CodeUnknownReference     = "unknown_reference"
	CodeInstantiationFailure = "instantiation_failure"
	CodeFieldAccessFailure   = "field_access_failure"
	CodeArrayElementMismatch = "array_element_mismatch"
	CodeRootTypeMismatch     = "root_type_mismatch"
	CodeCorruptNode          = "corrupt_node"

	// Wire decoding / ambient concerns.
	CodeInvalidType   = "invalid_type"
	CodeUnknownKey    = "unknown_key"
	CodeDuplicateKey  = "duplicate_key"
	CodeDuplicateID   = "duplicate_id"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
	CodeTruncated     = "truncated"

	// Dependency temporary/unavailable errors (context-injected factory
	// collaborators; mapped to 5xx at an API layer).
	CodeDependencyUnavailable = "dependency_unavailable"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
	// InputFragment is an optional snippet of the offending input. Because it can
	// be expensive to produce, it is best-effort.
	InputFragment string
	// Params carries structured parameters (e.g., {"min":1, "max":10, "got":42})
	// for i18n and observability.
	Params map[string]any
	// Rule optionally records the rule name that produced this issue.
	Rule string
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
