// Package topology normalizes vendor-specific bus address encodings.
package topology

import (
	"encoding/binary"
	"fmt"

	"github.com/tungetti/clinspect/internal/cl"
)

// Size of the AMD topology union and the offsets of its PCI-E payload.
const (
	AMDUnionSize      = 24
	amdBusOffset      = 21
	amdDeviceOffset   = 22
	amdFunctionOffset = 23
)

// Topology is either an Address or an Unknown encoding.
type Topology interface {
	fmt.Stringer
	isTopology()
}

// Address is a canonical PCI-E bus address.
type Address struct {
	Domain   uint32
	Bus      uint8
	Device   uint8
	Function uint8
}

func (Address) isTopology() {}

// String renders the address as shown in device listings.
func (a Address) String() string {
	return "PCI-E, " + a.SysfsName()
}

// SysfsName renders the address the way the kernel names PCI devices.
func (a Address) SysfsName() string {
	return fmt.Sprintf("%04x:%02x:%02x.%d", a.Domain, a.Bus, a.Device, a.Function)
}

// Unknown is a topology with an unrecognized discriminant, kept raw.
type Unknown struct {
	Type uint32
	Raw  []byte
}

func (Unknown) isTopology() {}

// String renders the discriminant and a hex dump of the raw bytes.
func (u Unknown) String() string {
	if len(u.Raw) == 0 {
		return fmt.Sprintf("<unknown type %d>", u.Type)
	}
	return fmt.Sprintf("<unknown type %d: % x>", u.Type, u.Raw)
}

// DecodeAMD decodes the AMD tagged topology union. Short or unrecognized
// payloads decode to Unknown rather than failing.
func DecodeAMD(raw []byte) Topology {
	if len(raw) < 4 {
		return Unknown{Raw: append([]byte(nil), raw...)}
	}
	typ := binary.NativeEndian.Uint32(raw)
	if typ != cl.TopologyTypePCIeAMD || len(raw) < AMDUnionSize {
		return Unknown{Type: typ, Raw: append([]byte(nil), raw...)}
	}
	return Address{
		Bus:      raw[amdBusOffset],
		Device:   raw[amdDeviceOffset],
		Function: raw[amdFunctionOffset],
	}
}

// DecodeNV builds an address from the NV bus and slot scalars. The slot packs
// the device number in its upper bits and the function in the low three.
// Drivers that do not report a domain leave it zero.
func DecodeNV(bus, slot, domain uint32) Address {
	return Address{
		Domain:   domain,
		Bus:      uint8(bus),
		Device:   uint8(slot >> 3),
		Function: uint8(slot & 0x7),
	}
}

// EncodeAMD builds the AMD union for a PCI-E address. Used by fixtures.
func EncodeAMD(a Address) []byte {
	raw := make([]byte, AMDUnionSize)
	binary.NativeEndian.PutUint32(raw, cl.TopologyTypePCIeAMD)
	raw[amdBusOffset] = a.Bus
	raw[amdDeviceOffset] = a.Device
	raw[amdFunctionOffset] = a.Function
	return raw
}
