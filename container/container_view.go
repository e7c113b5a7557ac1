package container

import (
	"encoding/binary"
	"unsafe"

	"github.com/lowrisc/cerberus-container/manifesttype"
	"github.com/lowrisc/cerberus-container/sigengine"
)

// Container is an immutable, authenticated view over a manifest container.
// A Container value only ever comes into existence via a successful call
// to ParseAndVerify: its mere existence is a witness that the signature
// over bytes [0, total_len-sig_len) of the buffer it was parsed from was
// valid at parse time. Body aliases the input buffer; using it after the
// backing buffer has been freed or mutated is undefined.
type Container struct {
	manifestType manifesttype.Tag
	metadata     Metadata
	body         []byte
}

// ParseAndVerify parses and authenticates buf as a manifest container.
//
// buf must begin on a 4-byte alignment boundary, so that the body slice
// handed back to callers (and to any downstream manifest body parser) is
// itself 4-byte aligned — HeaderLen is a multiple of 4, so slicing it off
// an aligned buffer preserves alignment.
//
// Verification happens before the magic number is decoded into a known
// manifest type: an adversary who crafts an input with an unrecognized
// type tag is rejected only after the bytes carrying that tag have
// already been authenticated, so the type-tag table cannot be probed with
// unauthenticated input.
func ParseAndVerify(buf []byte, verifier sigengine.Verifier) (*Container, error) {
	if len(buf) > 0 && uintptr(unsafe.Pointer(&buf[0]))%4 != 0 {
		return nil, ErrUnaligned
	}
	if len(buf) < HeaderLen {
		return nil, ErrOutOfRange
	}

	totalLen := int(binary.LittleEndian.Uint16(buf[lenOffset:]))
	magic := binary.LittleEndian.Uint16(buf[typeOffset:])
	id := binary.LittleEndian.Uint32(buf[idOffset:])
	sigLen := int(binary.LittleEndian.Uint16(buf[sigLenOffset:]))

	if totalLen > len(buf) || totalLen < HeaderLen {
		return nil, ErrOutOfRange
	}

	// buf[:totalLen][HeaderLen:] is 4-byte aligned because HeaderLen is a
	// multiple of 4 and buf is aligned.
	rest := buf[:totalLen][HeaderLen:]
	if sigLen > len(rest) {
		return nil, ErrOutOfRange
	}
	bodyLen := len(rest) - sigLen
	body, sig := rest[:bodyLen], rest[bodyLen:]

	signedLen := totalLen - sigLen
	if signedLen < 0 {
		return nil, ErrOutOfRange
	}
	signed := buf[:signedLen]

	if err := verifier.Verify(sig, signed); err != nil {
		return nil, newError(SignatureFailure, "signature check failed", err)
	}

	tag, ok := manifesttype.FromWire(magic)
	if !ok {
		return nil, ErrOutOfRange
	}

	return &Container{
		manifestType: tag,
		metadata:     Metadata{VersionID: id},
		body:         body,
	}, nil
}

// ManifestType returns the decoded manifest-type tag.
func (c *Container) ManifestType() manifesttype.Tag {
	return c.manifestType
}

// Metadata returns the container's metadata.
func (c *Container) Metadata() Metadata {
	return c.metadata
}

// Body returns the authenticated body bytes.
func (c *Container) Body() []byte {
	return c.body
}

// CanReplace reports whether c can replace other as the installed
// manifest: they must be of the same manifest type, and c's version id
// must be greater than or equal to other's. Equal ids are permitted —
// this allows idempotent refresh of the current version, at the cost of
// also permitting a trivial replay of it; this package does not silently
// tighten that to strict greater-than (see SPEC_FULL.md open question).
func (c *Container) CanReplace(other *Container) bool {
	return c.manifestType == other.manifestType &&
		c.metadata.VersionID >= other.metadata.VersionID
}

// Containerize re-encodes c into out, driving a Containerizer with c's
// own type, metadata, and body, and signing the result with signer. The
// resulting bytes are not guaranteed to be identical to the buffer c was
// originally parsed from unless signer uses the same key and a
// deterministic signature scheme (e.g. RSA PKCS#1 v1.5, as opposed to a
// randomized scheme).
func (c *Container) Containerize(signer sigengine.Signer, out []byte) ([]byte, error) {
	b, err := New(out)
	if err != nil {
		return nil, err
	}
	if err := b.WithType(c.manifestType); err != nil {
		return nil, err
	}
	if err := b.WithMetadata(c.metadata); err != nil {
		return nil, err
	}
	if err := b.WriteBytes(c.body); err != nil {
		return nil, err
	}
	return b.Sign(signer)
}
