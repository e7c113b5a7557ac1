// Package manifesttype implements the Cerberus manifest-type registry: a
// bidirectional mapping between the 16-bit wire "magic number" carried in a
// container header and the manifest-type tag that downstream manifest body
// parsers (FPM, PFM, CFM, ...) dispatch on.
package manifesttype

import "fmt"

// Tag identifies the kind of manifest body a container frames.
type Tag uint8

// Known manifest types. FPM's wire value is pinned by the Cerberus wire
// format; PFM and CFM are the other two standard Cerberus manifest kinds.
const (
	// FPM is the Firmware Policy Manifest.
	FPM Tag = iota + 1
	// PFM is the Platform Firmware Manifest.
	PFM
	// CFM is the Component Firmware Manifest.
	CFM
)

// Wire values for each known Tag.
const (
	wireFPM uint16 = 0xDA0E
	wirePFM uint16 = 0xDA0F
	wireCFM uint16 = 0xDA10
)

func (t Tag) String() string {
	switch t {
	case FPM:
		return "FPM"
	case PFM:
		return "PFM"
	case CFM:
		return "CFM"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// ToWire returns the 16-bit magic number for a known Tag. Passing an
// unknown Tag returns 0; callers are expected to only construct containers
// with one of the exported Tag constants.
func ToWire(t Tag) uint16 {
	switch t {
	case FPM:
		return wireFPM
	case PFM:
		return wirePFM
	case CFM:
		return wireCFM
	default:
		return 0
	}
}

// FromWire decodes a 16-bit magic number into a Tag. The second return
// value is false if the magic number is not a recognized manifest type.
func FromWire(magic uint16) (Tag, bool) {
	switch magic {
	case wireFPM:
		return FPM, true
	case wirePFM:
		return PFM, true
	case wireCFM:
		return CFM, true
	default:
		return 0, false
	}
}
