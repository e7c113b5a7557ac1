package manifesttype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToWire(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		want uint16
	}{
		{"fpm", FPM, 0xDA0E},
		{"pfm", PFM, 0xDA0F},
		{"cfm", CFM, 0xDA10},
		{"unknown", Tag(0xFF), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToWire(tt.tag))
		})
	}
}

func TestFromWire(t *testing.T) {
	tests := []struct {
		name   string
		magic  uint16
		want   Tag
		wantOK bool
	}{
		{"fpm", 0xDA0E, FPM, true},
		{"pfm", 0xDA0F, PFM, true},
		{"cfm", 0xDA10, CFM, true},
		{"unknown", 0x0000, 0, false},
		{"unknown high", 0xFFFF, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromWire(tt.magic)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, tag := range []Tag{FPM, PFM, CFM} {
		wire := ToWire(tag)
		got, ok := FromWire(wire)
		assert.True(t, ok)
		assert.Equal(t, tag, got)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "FPM", FPM.String())
	assert.Contains(t, Tag(0xFF).String(), "Tag(")
}
