package objectwire

import (
	"io"

	wire "github.com/objectwire/objectwire/internal/wire"
)

// DetectJSONDuplicateKeysBytes is a thin wrapper around internal/wire's
// duplicate-key scanner, surfaced at the root so callers don't need to
// reach into internal/.
func DetectJSONDuplicateKeysBytes(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	si, err := wire.DetectJSONDuplicateKeysBytes(data, toWireDup(strict.OnDuplicateKey), maxIssues)
	if err != nil {
		return nil, err
	}
	return fromWireIssues(si), nil
}

// DetectJSONDuplicateKeysReader is the io.Reader counterpart.
func DetectJSONDuplicateKeysReader(r io.Reader, strict Strictness, maxIssues int) (Issues, error) {
	si, err := wire.DetectJSONDuplicateKeysReader(r, toWireDup(strict.OnDuplicateKey), maxIssues)
	if err != nil {
		return nil, err
	}
	return fromWireIssues(si), nil
}

// DetectJSONDuplicateIDsBytes scans a document for an "@id" value declared
// on more than one object, the same fault referenceTable.put raises as
// CodeCorruptNode once the tree is built, but available here as a
// standalone pre-check over raw bytes.
func DetectJSONDuplicateIDsBytes(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	si, err := wire.DetectJSONDuplicateIDsBytes(data, toWireDup(strict.OnDuplicateID), maxIssues)
	if err != nil {
		return nil, err
	}
	return fromWireIssues(si), nil
}

// DetectJSONDuplicateIDsReader is DetectJSONDuplicateIDsBytes' io.Reader
// counterpart.
func DetectJSONDuplicateIDsReader(r io.Reader, strict Strictness, maxIssues int) (Issues, error) {
	si, err := wire.DetectJSONDuplicateIDsReader(r, toWireDup(strict.OnDuplicateID), maxIssues)
	if err != nil {
		return nil, err
	}
	return fromWireIssues(si), nil
}

func toWireDup(s Severity) wire.DuplicateStrictness {
	switch s {
	case SeverityError:
		return wire.DupError
	case SeverityWarn:
		return wire.DupWarn
	default:
		return wire.DupIgnore
	}
}

func fromWireIssues(si []wire.SimpleIssue) Issues {
	var iss Issues
	for _, s := range si {
		iss = AppendIssues(iss, Issue{Code: s.Code, Path: s.Path, Message: s.Message})
	}
	return iss
}
