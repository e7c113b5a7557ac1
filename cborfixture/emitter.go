// Package cborfixture implements RawCborEmitter: a declarative,
// intentionally non-validating constructor for CBOR byte sequences. It
// exists to synthesize both well-formed and deliberately malformed CBOR
// fixtures for higher-layer manifest-body parser tests (those parsers are
// out of scope for this module) — a long-form encoding of a value that
// would normally fit in the short form is perfectly legal to ask this
// emitter to produce, which is the entire point of having it.
//
// The three shapes it supports:
//
//   - Atom(major, arg) / AtomWidth(major, width, arg): a single CBOR head,
//     optionally with the argument's size class forced rather than chosen
//     minimally.
//   - Bytes(major, inner...): evaluates inner to a byte buffer, then emits
//     a head for major with argument equal to the inner byte length,
//     followed by the inner bytes (models byte-string-like bodies).
//   - List(major, items...): emits a head for major with argument equal to
//     len(items) (a top-level item count, not a byte count), followed by
//     each item's bytes (models array/map-like bodies).
//
// Raw/RawString embed already-encoded or literal bytes verbatim.
//
// This package panics rather than returning an error when asked to
// encode an invariant-violating combination (major type >= 8, or an
// argument that doesn't fit the forced width): it is test-only scaffolding,
// and production code must not depend on it.
package cborfixture

import "fmt"

// Item is one node of a declarative CBOR byte sequence.
type Item struct {
	write func(out []byte) []byte
}

// Emit concatenates the encodings of items in order and returns the
// resulting byte buffer.
func Emit(items ...Item) []byte {
	var out []byte
	for _, it := range items {
		out = it.write(out)
	}
	return out
}

// Raw appends b verbatim, for embedding hand-assembled bytes.
func Raw(b []byte) Item {
	return Item{write: func(out []byte) []byte {
		return append(out, b...)
	}}
}

// RawString appends s's bytes verbatim.
func RawString(s string) Item {
	return Raw([]byte(s))
}

// Atom appends a single CBOR head for the given major type and argument,
// choosing the minimal size class that can hold arg: values under 24 pack
// into the head byte itself; otherwise the smallest of 1/2/4/8 argument
// bytes is selected by magnitude.
func Atom(major byte, arg uint64) Item {
	return Item{write: func(out []byte) []byte {
		return appendHead(out, major, arg, -1)
	}}
}

// AtomWidth appends a single CBOR head for the given major type and
// argument, forcing the argument to be encoded in exactly width bytes
// (0, 1, 2, 4, or 8). It panics if width cannot hold arg.
func AtomWidth(major byte, width int, arg uint64) Item {
	return Item{write: func(out []byte) []byte {
		return appendHead(out, major, arg, width)
	}}
}

// Bytes evaluates inner to a byte buffer, then emits a head for major with
// argument equal to the inner byte length, followed by the inner bytes.
// This models a byte-string-like body: major 2 with literal contents
// produces a conventional CBOR byte string; other major types produce
// whatever length-prefixed nesting the caller is constructing, valid or
// not.
func Bytes(major byte, inner ...Item) Item {
	return Item{write: func(out []byte) []byte {
		innerBytes := Emit(inner...)
		out = appendHead(out, major, uint64(len(innerBytes)), -1)
		return append(out, innerBytes...)
	}}
}

// List emits a head for major with argument equal to len(items) — a count
// of top-level items, not a byte length — followed by each item's
// encoding in order. Nested groups inside an item do not affect this
// count; an empty item list emits a head with argument 0 and no payload.
func List(major byte, items ...Item) Item {
	return Item{write: func(out []byte) []byte {
		out = appendHead(out, major, uint64(len(items)), -1)
		for _, it := range items {
			out = it.write(out)
		}
		return out
	}}
}

// appendHead appends one CBOR head: (major<<5)|sizeClass followed by 0,
// 1, 2, 4, or 8 big-endian argument bytes. forcedWidth selects the size
// class explicitly (0, 1, 2, 4, or 8); -1 requests minimal encoding.
func appendHead(out []byte, major byte, arg uint64, forcedWidth int) []byte {
	if major >= 8 {
		panic(fmt.Sprintf("cborfixture: major type %d out of range (must be < 8)", major))
	}
	ty := major << 5

	width := forcedWidth
	if width < 0 {
		switch {
		case arg < 24:
			width = 0
		case arg <= 0xFF:
			width = 1
		case arg <= 0xFFFF:
			width = 2
		case arg <= 0xFFFFFFFF:
			width = 4
		default:
			width = 8
		}
	}

	switch width {
	case 0:
		if arg >= 24 {
			panic(fmt.Sprintf("cborfixture: argument %d does not fit in a bare head byte", arg))
		}
		return append(out, ty|byte(arg))
	case 1:
		if arg > 0xFF {
			panic(fmt.Sprintf("cborfixture: argument %d does not fit in 1 byte", arg))
		}
		return append(out, ty|24, byte(arg))
	case 2:
		if arg > 0xFFFF {
			panic(fmt.Sprintf("cborfixture: argument %d does not fit in 2 bytes", arg))
		}
		return append(out, ty|25, byte(arg>>8), byte(arg))
	case 4:
		if arg > 0xFFFFFFFF {
			panic(fmt.Sprintf("cborfixture: argument %d does not fit in 4 bytes", arg))
		}
		return append(out, ty|26,
			byte(arg>>24), byte(arg>>16), byte(arg>>8), byte(arg))
	case 8:
		return append(out, ty|27,
			byte(arg>>56), byte(arg>>48), byte(arg>>40), byte(arg>>32),
			byte(arg>>24), byte(arg>>16), byte(arg>>8), byte(arg))
	default:
		panic(fmt.Sprintf("cborfixture: invalid long-form width %d", width))
	}
}
