package devices

import "fmt"

// Vendor is the vendor component of every device id in this module.
const Vendor = 0x1c0d

// ID identifies a device class.
// The upper 16 bits hold the vendor, the lower 16 bits the class.
type ID uint32

// NewID creates a new id with the given components.
func NewID(vendor, class int) ID {
	return ID(vendor&0xffff)<<16 | ID(class&0xffff)
}

// Vendor returns the vendor component of the id.
func (id ID) Vendor() int {
	return int(id>>16) & 0xffff
}

// Class returns the device class component of the id.
func (id ID) Class() int {
	return int(id) & 0xffff
}

func (id ID) String() string {
	return fmt.Sprintf("%04x:%04x", id.Vendor(), id.Class())
}
