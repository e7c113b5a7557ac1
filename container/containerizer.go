package container

import (
	"github.com/lowrisc/cerberus-container/cursor"
	"github.com/lowrisc/cerberus-container/manifesttype"
	"github.com/lowrisc/cerberus-container/sigengine"
)

// Containerizer incrementally builds a new manifest container into a
// caller-provided buffer. It is constructed with New, populated with
// WithType / WithMetadata / WriteBytes in any order (the header fields
// may be set more than once; last write wins), and terminated exactly
// once by Sign, which patches the final header fields and authenticates
// the result.
//
// A Containerizer that is discarded without calling Sign leaves its
// output buffer in an indeterminate but bounded state; callers must not
// read it as a container.
type Containerizer struct {
	cur *cursor.Cursor

	hasType     bool
	hasMetadata bool
}

// New creates a Containerizer writing into out. It performs no I/O beyond
// validating that out is large enough to hold a container header, and
// positions the cursor's logical write position past the header so that
// subsequent WriteBytes calls append the body immediately after it.
func New(out []byte) (*Containerizer, error) {
	if len(out) < HeaderLen {
		return nil, ErrOutOfRange
	}
	cur := cursor.New(out)
	if err := cur.Seek(HeaderLen); err != nil {
		return nil, ErrOutOfRange
	}
	return &Containerizer{cur: cur}, nil
}

// WithType writes the wire value of the manifest type tag into the
// header's magic field.
//
// The field is patched immediately with a save-mark / seek / write /
// restore-mark sequence rather than staged in a register, so the cursor's
// logical write position always tracks the end of the body — deliberately
// avoiding a separate staging buffer.
func (b *Containerizer) WithType(tag manifesttype.Tag) error {
	mark := b.cur.ConsumedLen()
	if err := b.cur.Seek(typeOffset); err != nil {
		return ErrOutOfRange
	}
	if err := b.cur.WriteLE16(manifesttype.ToWire(tag)); err != nil {
		return ErrOutOfRange
	}
	if err := b.cur.Seek(mark); err != nil {
		return ErrOutOfRange
	}
	b.hasType = true
	return nil
}

// WithMetadata writes meta's version id into the header's id field, using
// the same immediate save-mark / seek / write / restore-mark sequence as
// WithType.
func (b *Containerizer) WithMetadata(meta Metadata) error {
	mark := b.cur.ConsumedLen()
	if err := b.cur.Seek(idOffset); err != nil {
		return ErrOutOfRange
	}
	if err := b.cur.WriteLE32(meta.VersionID); err != nil {
		return ErrOutOfRange
	}
	if err := b.cur.Seek(mark); err != nil {
		return ErrOutOfRange
	}
	b.hasMetadata = true
	return nil
}

// WriteBytes appends p to the body. It does not touch the header; the
// body's length is implied by how much has been written by the time Sign
// is called.
func (b *Containerizer) WriteBytes(p []byte) error {
	if err := b.cur.WriteBytes(p); err != nil {
		return ErrOutOfRange
	}
	return nil
}

// Sign finalizes the container: it requires both WithType and WithMetadata
// to have been called, patches total_len, sig_len, and the fixed 0xFFFF
// padding into the header (in that order, before signing, so the signed
// bytes match what ParseAndVerify will re-authenticate), and signs the
// header-plus-body prefix with signer, writing the signature into the
// buffer's tail. It returns the [0, total_len) prefix of the output
// buffer as the finished container.
func (b *Containerizer) Sign(signer sigengine.Signer) ([]byte, error) {
	if !b.hasType || !b.hasMetadata {
		return nil, ErrOutOfRange
	}

	sigLen := signer.PubLen()
	totalLen := b.cur.ConsumedLen() + sigLen
	const u16Max = 0xFFFF
	if totalLen > u16Max || sigLen > u16Max {
		return nil, ErrOutOfRange
	}

	mark := b.cur.ConsumedLen()
	if err := b.cur.Seek(lenOffset); err != nil {
		return nil, ErrOutOfRange
	}
	if err := b.cur.WriteLE16(uint16(totalLen)); err != nil {
		return nil, ErrOutOfRange
	}
	if err := b.cur.Seek(sigLenOffset); err != nil {
		return nil, ErrOutOfRange
	}
	if err := b.cur.WriteLE16(uint16(sigLen)); err != nil {
		return nil, ErrOutOfRange
	}
	if err := b.cur.WriteLE16(headerPad); err != nil {
		return nil, ErrOutOfRange
	}
	if err := b.cur.Seek(mark); err != nil {
		return nil, ErrOutOfRange
	}

	message, sigOut, err := b.cur.ConsumeWithPrior(sigLen)
	if err != nil {
		return nil, ErrOutOfRange
	}
	if err := signer.Sign(sigOut, message); err != nil {
		return nil, newError(SignatureFailure, "signing failed", err)
	}
	return b.cur.TakeConsumedBytes(), nil
}
