package goswipe

import "fmt"

// ParseError is returned when a companion attribute value or an inline
// directive expression is not a valid loose object. Offset is the byte offset
// into Input where parsing stopped.
type ParseError struct {
	Input  string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("goswipe: cannot parse %q at offset %d: %s", e.Input, e.Offset, e.Reason)
}

// BreakpointError is returned when a breakpoint-scoped modifier names a size
// that is not present in the breakpoint table.
type BreakpointError struct {
	Name string
	Key  string
}

func (e *BreakpointError) Error() string {
	return fmt.Sprintf("goswipe: unknown breakpoint %q in modifier %q", e.Name, e.Key)
}

// MalformedTokenError reports a key/value modifier at the end of the stream
// with no value following it. It is a warning: the key is dropped from the
// compiled configuration.
type MalformedTokenError struct {
	Key string
	Pos int
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("goswipe: modifier %q at position %d has no value", e.Key, e.Pos)
}

// DanglingReferenceError reports a control or sync companion naming an
// element id that never appeared. The dependent binding stays pending.
type DanglingReferenceError struct {
	Directive string
	Target    string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("goswipe: %s target %q never appeared", e.Directive, e.Target)
}

// DirectiveError ties any of the errors above to the element and directive
// that produced it.
type DirectiveError struct {
	Element   string
	Directive string
	Err       error
}

func (e *DirectiveError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	if e.Element == "" {
		return e.Directive + ": " + e.Err.Error()
	}
	return e.Element + " " + e.Directive + ": " + e.Err.Error()
}

func (e *DirectiveError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func directiveError(err error, element, directive string) error {
	if err == nil {
		return nil
	}
	return &DirectiveError{
		Element:   element,
		Directive: directive,
		Err:       err,
	}
}
