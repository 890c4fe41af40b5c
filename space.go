package gpulayout

import "fmt"

// AddressSpace selects the set of packing rules applied to a host-shareable
// struct and, transitively, to every member nested inside it.
type AddressSpace uint8

const (
	// Storage is the var<storage> address space.
	Storage AddressSpace = iota
	// Uniform is the var<uniform> address space. Arrays get a 16-byte
	// aligned stride and nested structs are placed on 16-byte boundaries.
	Uniform
)

func (s AddressSpace) String() string {
	switch s {
	case Storage:
		return "storage"
	case Uniform:
		return "uniform"
	default:
		return fmt.Sprintf("AddressSpace(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the known address spaces.
func (s AddressSpace) Valid() bool {
	return s == Storage || s == Uniform
}

// ParseAddressSpace parses "storage" or "uniform".
func ParseAddressSpace(name string) (AddressSpace, error) {
	switch name {
	case "storage":
		return Storage, nil
	case "uniform":
		return Uniform, nil
	default:
		return 0, fmt.Errorf("unknown address space %q (want storage or uniform)", name)
	}
}
