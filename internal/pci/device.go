// Package pci reads PCI device details from sysfs for devices whose bus
// address is known from their topology.
package pci

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tungetti/clinspect/internal/vendor"
)

// Device is a PCI device read from sysfs.
type Device struct {
	// Address is the PCI bus address (e.g., "0000:01:00.0")
	Address string

	// VendorID is the PCI vendor ID (e.g., "10de" for NVIDIA)
	VendorID string

	// DeviceID is the PCI device ID (e.g., "2684" for RTX 4090)
	DeviceID string

	Class       string
	SubVendorID string
	SubDeviceID string
	Revision    string

	// Driver is the bound kernel driver, empty when none is bound
	Driver string
}

// ShortID returns the PCI ID in the format "vendor:device".
func (d *Device) ShortID() string {
	return fmt.Sprintf("%s:%s", d.VendorID, d.DeviceID)
}

// HasDriver returns true if a driver is currently bound to this device.
func (d *Device) HasDriver() bool {
	return d.Driver != ""
}

// VendorName returns the vendor name for known vendor ids.
func (d *Device) VendorName() string {
	id, err := strconv.ParseUint(d.VendorID, 16, 32)
	if err != nil {
		return ""
	}
	return vendor.PCIVendorName(uint32(id))
}

// ModelName returns the marketing name for known NVIDIA devices.
func (d *Device) ModelName() string {
	id, err := strconv.ParseUint(d.VendorID, 16, 32)
	if err != nil || uint32(id) != vendor.PCIVendorNVIDIA {
		return ""
	}
	if m, ok := vendor.LookupModel(d.DeviceID); ok {
		return m.String()
	}
	return ""
}

// String renders the id, the known name and the bound driver, e.g.
// "10de:2684 NVIDIA GeForce RTX 4090, driver: nvidia".
func (d *Device) String() string {
	parts := []string{d.ShortID()}
	if name := d.VendorName(); name != "" {
		parts = append(parts, name)
	}
	if model := d.ModelName(); model != "" {
		parts = append(parts, model)
	}
	s := strings.Join(parts, " ")
	if d.HasDriver() {
		return s + ", driver: " + d.Driver
	}
	return s + ", no driver"
}

// ParseHexID normalizes a hex ID string by removing "0x" prefix and converting to lowercase.
func ParseHexID(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return strings.ToLower(s)
}
