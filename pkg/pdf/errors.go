package pdf

import (
	"errors"
	"fmt"
)

// ErrObjectCast reports an attempt to use an object as the wrong variant.
var ErrObjectCast = errors.New("invalid attempt to cast object to wrong type")

// ErrObjectNotFound reports a lookup of a missing object or dictionary key.
var ErrObjectNotFound = errors.New("object not found")

// ErrUnsupported reports a document feature that is recognized but not
// implemented, such as compressed xref entries.
var ErrUnsupported = errors.New("unsupported document feature")

// ErrEncrypted reports a document whose trailer carries an /Encrypt entry.
var ErrEncrypted = fmt.Errorf("%w: encrypted document", ErrUnsupported)

// SyntaxError reports malformed bytes at a position in the input.
type SyntaxError struct {
	Offset int64
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed input at offset %d: %s", e.Offset, e.Msg)
}

// WrongObjectError reports an xref entry whose offset points at a different
// object header than the entry declares.
type WrongObjectError struct {
	Expected ObjectID
	Found    ObjectID
}

func (e *WrongObjectError) Error() string {
	return fmt.Sprintf("found wrong object for expected xref entry: expected %v, found %v",
		e.Expected, e.Found)
}

// InvalidEntryError reports an xref entry whose offset does not point at an
// object header at all.
type InvalidEntryError struct {
	ID ObjectID
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid entry found in xref table for %v", e.ID)
}

// CapStyleError reports a J operand outside 0, 1, 2.
type CapStyleError struct {
	Value int64
}

func (e *CapStyleError) Error() string {
	return fmt.Sprintf("cap style should be 0, 1, 2 but was %d", e.Value)
}

// TrailingContentError reports content stream bytes left over after the
// operator parser stopped making progress.
type TrailingContentError struct {
	Remainder []byte
}

func (e *TrailingContentError) Error() string {
	rest := e.Remainder
	if len(rest) > 32 {
		rest = rest[:32]
	}
	return fmt.Sprintf("failed to parse entire stream content, %d bytes left at %q",
		len(e.Remainder), rest)
}
