// Package oerr defines the typed error kinds shared by the location index,
// OPL parser, and PBF pipeline packages.
package oerr

import "fmt"

// NotFoundError is returned by a Location Index when an id has never been
// set (or was set to the undefined location).
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("id %d not found", e.ID)
}

// MapFactoryError is returned by the nodeindex factory for an empty or
// unregistered map type name.
type MapFactoryError struct {
	Name string
}

func (e *MapFactoryError) Error() string {
	if e.Name == "" {
		return "need non-empty map type name"
	}
	return fmt.Sprintf("support for map type %q not compiled into this binary", e.Name)
}

// OPLError carries the position of a text-decoding failure. Offset, Line,
// and Column are always resolved to plain ints before the parser returns
// the error; no pointer into the source buffer ever escapes.
type OPLError struct {
	Msg    string
	Offset int
	Line   int
	Column int
}

func (e *OPLError) Error() string {
	return fmt.Sprintf("%s on line %d column %d", e.Msg, e.Line, e.Column)
}

// PBFErrorKind distinguishes the stage at which a PBF decode failure
// occurred, so callers can decide whether it is retryable.
type PBFErrorKind int

const (
	PBFFraming PBFErrorKind = iota
	PBFSize
	PBFCompression
	PBFDecode
	PBFTruncated
	PBFUnexpectedBlobType
)

type PBFError struct {
	Kind PBFErrorKind
	Msg  string
}

func (e *PBFError) Error() string {
	return "pbf: " + e.Msg
}

// InvalidLocationError is returned when a coordinate cannot be represented
// in the fixed-point Location encoding.
type InvalidLocationError struct {
	Msg string
}

func (e *InvalidLocationError) Error() string {
	return "invalid location: " + e.Msg
}
