package objectwire

// IssueAt creates an Issue at the given path with the provided code, message
// and params map. A convenience helper for call sites with many parameters.
func IssueAt(p PathRef, code, msg string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: params}
}
