package pci

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tungetti/clinspect/internal/errors"
)

// DefaultSysfsPath is the default path to the sysfs PCI devices directory.
const DefaultSysfsPath = "/sys/bus/pci/devices"

// FileSystem abstracts filesystem operations for testing.
type FileSystem interface {
	ReadFile(filename string) ([]byte, error)
	Readlink(name string) (string, error)
	Stat(name string) (fs.FileInfo, error)
}

// RealFileSystem implements FileSystem using the actual operating system.
type RealFileSystem struct{}

// ReadFile reads the file named by filename and returns the contents.
func (RealFileSystem) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// Readlink returns the destination of the named symbolic link.
func (RealFileSystem) Readlink(name string) (string, error) {
	return os.Readlink(name)
}

// Stat returns the FileInfo structure describing file.
func (RealFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Scanner reads PCI devices from sysfs by address.
type Scanner struct {
	fs        FileSystem
	sysfsPath string
}

// ScannerOption configures the scanner.
type ScannerOption func(*Scanner)

// WithFileSystem sets a custom filesystem implementation.
func WithFileSystem(fs FileSystem) ScannerOption {
	return func(s *Scanner) {
		s.fs = fs
	}
}

// WithSysfsPath sets a custom sysfs path.
func WithSysfsPath(path string) ScannerOption {
	return func(s *Scanner) {
		if path != "" {
			s.sysfsPath = path
		}
	}
}

// NewScanner creates a new PCI device scanner with the given options.
func NewScanner(opts ...ScannerOption) *Scanner {
	s := &Scanner{
		fs:        RealFileSystem{},
		sysfsPath: DefaultSysfsPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup reads the device at address, e.g. "0000:01:00.0". A device that is
// not present in sysfs yields a NotFound error.
func (s *Scanner) Lookup(address string) (Device, error) {
	devicePath := filepath.Join(s.sysfsPath, address)
	if _, err := s.fs.Stat(devicePath); err != nil {
		if os.IsNotExist(err) {
			return Device{}, errors.Wrapf(errors.NotFound, err, "PCI device %s not found", address).WithOp("pci.Lookup")
		}
		return Device{}, errors.Wrapf(errors.PropertyQuery, err, "failed to stat PCI device %s", address).WithOp("pci.Lookup")
	}

	device := Device{Address: address}

	vendorID, err := s.readSysfsFile(devicePath, "vendor")
	if err != nil {
		return device, errors.Wrap(errors.PropertyQuery, "failed to read vendor ID", err).WithOp("pci.Lookup")
	}
	device.VendorID = ParseHexID(vendorID)

	deviceID, err := s.readSysfsFile(devicePath, "device")
	if err != nil {
		return device, errors.Wrap(errors.PropertyQuery, "failed to read device ID", err).WithOp("pci.Lookup")
	}
	device.DeviceID = ParseHexID(deviceID)

	if class, err := s.readSysfsFile(devicePath, "class"); err == nil {
		device.Class = ParseHexID(class)
	}
	if subVendor, err := s.readSysfsFile(devicePath, "subsystem_vendor"); err == nil {
		device.SubVendorID = ParseHexID(subVendor)
	}
	if subDevice, err := s.readSysfsFile(devicePath, "subsystem_device"); err == nil {
		device.SubDeviceID = ParseHexID(subDevice)
	}
	if revision, err := s.readSysfsFile(devicePath, "revision"); err == nil {
		device.Revision = ParseHexID(revision)
	}

	device.Driver = s.readDriverLink(devicePath)
	return device, nil
}

func (s *Scanner) readSysfsFile(devicePath, filename string) (string, error) {
	content, err := s.fs.ReadFile(filepath.Join(devicePath, filename))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(content)), nil
}

// readDriverLink returns the bound driver name, or "" when none is bound.
func (s *Scanner) readDriverLink(devicePath string) string {
	driverPath := filepath.Join(devicePath, "driver")
	if _, err := s.fs.Stat(driverPath); err != nil {
		return ""
	}
	target, err := s.fs.Readlink(driverPath)
	if err != nil {
		return ""
	}
	// the target looks like "../../../bus/pci/drivers/nvidia"
	return filepath.Base(target)
}
