package wire

import (
	"bytes"
	"encoding/json"
	"io"
)

// DuplicateStrictness controls duplicate key handling in detection helpers.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// NOTE: containerKind/kindObject/kindArray/dupFrame are defined in enforce.go and reused here.

// DetectJSONDuplicateKeysBytes detects duplicate object keys from a JSON byte slice.
// If onDup is DupIgnore, no issues are produced. maxIssues < 0 means unlimited; 0 means disabled; >0 sets limit.
func DetectJSONDuplicateKeysBytes(data []byte, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return detectJSONDuplicateKeys(dec, onDup, DupIgnore, maxIssues)
}

// DetectJSONDuplicateKeysReader detects duplicate object keys from an io.Reader.
// Note: this will consume the reader fully.
func DetectJSONDuplicateKeysReader(r io.Reader, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return detectJSONDuplicateKeys(dec, onDup, DupIgnore, maxIssues)
}

// DetectJSONDuplicateIDsBytes scans a JSON byte slice for an "@id" value
// repeated across more than one object, the document-scoped structural
// fault a reference table would otherwise only catch once the whole tree
// is built. It shares the object/array bookkeeping detectJSONDuplicateKeys
// already does rather than re-tokenizing the document a second time.
func DetectJSONDuplicateIDsBytes(data []byte, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return detectJSONDuplicateKeys(dec, DupIgnore, onDup, maxIssues)
}

// DetectJSONDuplicateIDsReader is DetectJSONDuplicateIDsBytes' io.Reader
// counterpart. Note: this will consume the reader fully.
func DetectJSONDuplicateIDsReader(r io.Reader, onDup DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	if onDup == DupIgnore {
		return nil, nil
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return detectJSONDuplicateKeys(dec, DupIgnore, onDup, maxIssues)
}

func detectJSONDuplicateKeys(dec *json.Decoder, onDupKey, onDupID DuplicateStrictness, maxIssues int) ([]SimpleIssue, error) {
	var issues []SimpleIssue
	var stack []dupFrame
	seenIDs := make(map[string]struct{})
	var awaitingID bool

	appendIssue := func(i SimpleIssue) {
		if maxIssues == 0 || (maxIssues > 0 && len(issues) >= maxIssues) {
			return
		}
		issues = append(issues, i)
		if maxIssues > 0 && len(issues) >= maxIssues {
			issues = append(issues, SimpleIssue{Code: "truncated", Path: "/", Message: "max issues reached"})
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			appendIssue(SimpleIssue{Code: "parse_error", Path: "/", Message: err.Error()})
			break
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				awaitingID = false
				stack = append(stack, dupFrame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true})
			case '[':
				awaitingID = false
				stack = append(stack, dupFrame{kind: kindArray})
			case '}':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
					if len(stack) > 0 {
						top := &stack[len(stack)-1]
						if top.kind == kindObject && !top.expectingKey {
							top.expectingKey = true
						}
					}
				}
			case ']':
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
					if len(stack) > 0 {
						top := &stack[len(stack)-1]
						if top.kind == kindObject && !top.expectingKey {
							top.expectingKey = true
						}
					}
				}
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && top.expectingKey {
					if onDupKey != DupIgnore {
						if _, ok := top.keys[v]; ok {
							appendIssue(SimpleIssue{Code: "duplicate_key", Path: "/", Message: "key '" + v + "' duplicated"})
							if onDupKey == DupError {
								return issues, nil
							}
						}
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					awaitingID = v == idWireKey
					continue
				}
			}
			if awaitingID {
				awaitingID = false
				if onDupID != DupIgnore && noteDetectedID(seenIDs, "s:"+v, appendIssue) && onDupID == DupError {
					return issues, nil
				}
			}
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && !top.expectingKey {
					top.expectingKey = true
				}
			}
		default:
			if awaitingID {
				awaitingID = false
				if n, ok := v.(json.Number); ok && onDupID != DupIgnore {
					if noteDetectedID(seenIDs, "n:"+n.String(), appendIssue) && onDupID == DupError {
						return issues, nil
					}
				}
			}
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && !top.expectingKey {
					top.expectingKey = true
				}
			}
		}
	}

	return issues, nil
}

// noteDetectedID records idKey against seen and, if it was already present,
// appends a duplicate_id issue and reports true.
func noteDetectedID(seen map[string]struct{}, idKey string, appendIssue func(SimpleIssue)) bool {
	if _, ok := seen[idKey]; ok {
		appendIssue(SimpleIssue{Code: "duplicate_id", Path: "/", Message: "@id '" + idKey[2:] + "' duplicated"})
		return true
	}
	seen[idKey] = struct{}{}
	return false
}
