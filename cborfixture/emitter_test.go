package cborfixture

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMinimalEncoding checks spec.md §8's "CBOR minimal encoding" fixture
// scenario: for each n, the minimal-width head picked by Atom matches the
// literal fixture bytes.
func TestMinimalEncoding(t *testing.T) {
	tests := []struct {
		name string
		arg  uint64
		want []byte
	}{
		{"0", 0, []byte{0x20}},
		{"23", 23, []byte{0x37}},
		{"24", 24, []byte{0x38, 0x18}},
		{"0xFF", 0xFF, []byte{0x38, 0xFF}},
		{"0x100", 0x100, []byte{0x39, 0x01, 0x00}},
		{"256", 256, []byte{0x39, 0x01, 0x00}},
		{"0xFFFF", 0xFFFF, []byte{0x39, 0xFF, 0xFF}},
		{"0x10000", 0x10000, []byte{0x3A, 0x00, 0x01, 0x00, 0x00}},
		{"0xFFFFFFFF", 0xFFFFFFFF, []byte{0x3A, 0xFF, 0xFF, 0xFF, 0xFF}},
		{"2^32", 1 << 32, []byte{0x3B, 0, 0, 0, 1, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Emit(Atom(1, tt.arg)))
		})
	}
}

// TestForcedWidth checks spec.md §8's "CBOR forced width" fixture
// scenario, plus the byte-string, empty-array, and two-element-array
// shapes from the same scenario.
func TestForcedWidth(t *testing.T) {
	assert.Equal(t, []byte{0x99, 0x00, 0x05}, Emit(AtomWidth(4, 2, 5)))

	assert.Equal(t, []byte{0x45, 'h', 'e', 'l', 'l', 'o'},
		Emit(Bytes(2, RawString("hello"))))

	assert.Equal(t, []byte{0x80}, Emit(List(4)))

	assert.Equal(t, []byte{0x82, 'a', 'b'},
		Emit(List(4, RawString("a"), RawString("b"))))
}

// TestMajorTypeOutOfRangePanics checks the major < 8 constraint.
func TestMajorTypeOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { Emit(Atom(8, 0)) })
}

// TestForcedWidthOverflowPanics checks that a forced width too narrow for
// the argument panics rather than silently truncating.
func TestForcedWidthOverflowPanics(t *testing.T) {
	assert.Panics(t, func() { Emit(AtomWidth(0, 1, 0x100)) })
	assert.Panics(t, func() { Emit(AtomWidth(0, 0, 24)) })
	assert.Panics(t, func() { Emit(AtomWidth(0, 2, 0x10000)) })
	assert.Panics(t, func() { Emit(AtomWidth(0, 4, 1<<32)) })
}

// TestNestedGroupsDoNotAffectOuterCount checks that only top-level items
// passed to List increment its count, regardless of how many bytes a
// nested group emits.
func TestNestedGroupsDoNotAffectOuterCount(t *testing.T) {
	got := Emit(List(4, Bytes(2, RawString("abc")), RawString("x")))
	// count = 2 (one byte-string item, one raw item), not the number of
	// bytes either of them expands to.
	want := append([]byte{0x82}, Emit(Bytes(2, RawString("abc")))...)
	want = append(want, 'x')
	assert.Equal(t, want, got)
}

// TestForcedWidthRoundTripsThroughReferenceDecoder checks spec.md §8's
// requirement that "forced-width encodings round-trip through a reference
// CBOR decoder for valid widths": a long-form encoding of a small integer
// is still, bit for bit, a spec-conformant CBOR integer, and a real CBOR
// library must decode it to the same value a minimal encoding would.
func TestForcedWidthRoundTripsThroughReferenceDecoder(t *testing.T) {
	widths := []struct {
		width int
		arg   uint64
	}{
		{1, 5},
		{2, 5},
		{4, 5},
		{8, 5},
	}
	for _, tt := range widths {
		encoded := Emit(AtomWidth(0, tt.width, tt.arg))
		var decoded uint64
		require.NoError(t, cbor.Unmarshal(encoded, &decoded))
		assert.Equal(t, tt.arg, decoded)
	}
}

// TestByteStringRoundTripsThroughReferenceDecoder checks that a
// conventionally-shaped byte string (major type 2) this emitter produces
// decodes through fxamacker/cbor exactly like a normal CBOR byte string.
func TestByteStringRoundTripsThroughReferenceDecoder(t *testing.T) {
	encoded := Emit(Bytes(2, RawString("hello world")))
	var decoded []byte
	require.NoError(t, cbor.Unmarshal(encoded, &decoded))
	assert.Equal(t, "hello world", string(decoded))
}

// TestArrayRoundTripsThroughReferenceDecoder checks that this emitter's
// List shape, when populated with conventional byte-string items, decodes
// through fxamacker/cbor as an ordinary CBOR array.
func TestArrayRoundTripsThroughReferenceDecoder(t *testing.T) {
	encoded := Emit(List(4, Bytes(2, RawString("a")), Bytes(2, RawString("b"))))
	var decoded [][]byte
	require.NoError(t, cbor.Unmarshal(encoded, &decoded))
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, decoded)
}

// TestNonMinimalEncodingIsIntentionallyAllowed checks the emitter's core
// reason for existing: it will happily encode a value in a longer form
// than strictly necessary, which a validating encoder would refuse.
func TestNonMinimalEncodingIsIntentionallyAllowed(t *testing.T) {
	// 5 fits in a single head byte, but we force an 8-byte long-form
	// encoding of it anyway.
	encoded := Emit(AtomWidth(0, 8, 5))
	assert.Equal(t, []byte{0x1B, 0, 0, 0, 0, 0, 0, 0, 5}, encoded)

	var decoded uint64
	require.NoError(t, cbor.Unmarshal(encoded, &decoded))
	assert.Equal(t, uint64(5), decoded)
}
