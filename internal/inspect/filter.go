package inspect

import (
	"strconv"
	"strings"

	"github.com/tungetti/clinspect/internal/errors"
)

// DevicePair selects a device by platform and device ordinal.
type DevicePair struct {
	Platform int
	Device   int
}

// String renders the pair as "P:D".
func (p DevicePair) String() string {
	return strconv.Itoa(p.Platform) + ":" + strconv.Itoa(p.Device)
}

// ParseDevicePair parses a "P:D" selector.
func ParseDevicePair(s string) (DevicePair, error) {
	ps, ds, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return DevicePair{}, errors.Newf(errors.Validation, "invalid device selector %q, expected P:D", s)
	}
	p, err := strconv.Atoi(ps)
	if err != nil || p < 0 {
		return DevicePair{}, errors.Newf(errors.Validation, "invalid platform index in %q", s)
	}
	d, err := strconv.Atoi(ds)
	if err != nil || d < 0 {
		return DevicePair{}, errors.Newf(errors.Validation, "invalid device index in %q", s)
	}
	return DevicePair{Platform: p, Device: d}, nil
}

// Filter selects devices and properties. Empty sets select everything.
type Filter struct {
	Devices    []DevicePair
	Properties []string
}

// NewFilter builds a Filter from "P:D" selectors and property substrings.
func NewFilter(devices, properties []string) (Filter, error) {
	var f Filter
	for _, s := range devices {
		pair, err := ParseDevicePair(s)
		if err != nil {
			return Filter{}, err
		}
		f.Devices = append(f.Devices, pair)
	}
	for _, p := range properties {
		if p = strings.TrimSpace(p); p != "" {
			f.Properties = append(f.Properties, strings.ToLower(p))
		}
	}
	return f, nil
}

// AdmitsDevice reports whether the device at (platform, device) is selected.
func (f Filter) AdmitsDevice(platform, device int) bool {
	if len(f.Devices) == 0 {
		return true
	}
	for _, p := range f.Devices {
		if p.Platform == platform && p.Device == device {
			return true
		}
	}
	return false
}

// AdmitsPlatform reports whether any device of the platform may be selected.
func (f Filter) AdmitsPlatform(platform int) bool {
	if len(f.Devices) == 0 {
		return true
	}
	for _, p := range f.Devices {
		if p.Platform == platform {
			return true
		}
	}
	return false
}

// AdmitsProperty reports whether any of the names contains a selected
// substring. Matching ignores case.
func (f Filter) AdmitsProperty(names ...string) bool {
	if len(f.Properties) == 0 {
		return true
	}
	for _, name := range names {
		lower := strings.ToLower(name)
		for _, sub := range f.Properties {
			if strings.Contains(lower, strings.ToLower(sub)) {
				return true
			}
		}
	}
	return false
}
