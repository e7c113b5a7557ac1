// Package container implements the Cerberus manifest container codec: a
// fixed-layout 12-byte header framing a manifest body and a trailing
// asymmetric signature, plus the monotonic version id downstream
// components use to reject rollback.
//
// Two entry points matter: ParseAndVerify turns an untrusted byte buffer
// into an authenticated Container view, and Containerizer incrementally
// builds a new container into a caller-provided buffer, signing it in
// place. See the package-level wire format comment below for the exact
// byte layout.
//
// Wire format (little-endian, no trailing padding beyond the header):
//
//	+--------+--------+--------+--------+
//	| total_len (u16) | magic   (u16)  |
//	+--------+--------+--------+--------+
//	|            id    (u32)           |
//	+--------+--------+--------+--------+
//	| sig_len (u16)   | pad 0xFFFF     |
//	+--------+--------+--------+--------+
//	| body  (total_len − 12 − sig_len) |
//	+----------------------------------+
//	| signature         (sig_len)      |
//	+----------------------------------+
package container

// Offsets and lengths of the fixed container header.
const (
	// HeaderLen is the length of the container header in bytes: two
	// halves, a word, another half, and two bytes of padding. It is a
	// multiple of 4, which guarantees that a 4-byte-aligned input yields
	// a 4-byte-aligned body slice.
	HeaderLen = 12

	lenOffset    = 0
	typeOffset   = 2
	idOffset     = 4
	sigLenOffset = 8
	padOffset    = 10

	// headerPad is the fixed filler value written at padOffset on
	// emission. It is part of the signed range, so any deviation from
	// this value breaks verification; it is ignored (not validated) on
	// parse.
	headerPad uint16 = 0xFFFF
)

// Metadata describes data attached to every manifest container that is
// part of the signed (authenticated) component.
type Metadata struct {
	// VersionID is a monotonically increasing integer a signing authority
	// bumps for each new manifest. Downstream components use it to refuse
	// to load a container with a smaller version than one already
	// installed — see Container.CanReplace.
	VersionID uint32
}
