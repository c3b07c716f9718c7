package inspect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tungetti/clinspect/internal/errors"
)

// Version is an API version such as 1.2.
type Version struct {
	Major int
	Minor int
}

// Well-known versions used by property gates.
var (
	Version10 = Version{1, 0}
	Version11 = Version{1, 1}
	Version12 = Version{1, 2}
)

// String renders "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is o or newer.
func (v Version) AtLeast(o Version) bool {
	if v.Major != o.Major {
		return v.Major > o.Major
	}
	return v.Minor >= o.Minor
}

// IsZero reports whether no version is set.
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0
}

// ParseVersion parses a version string of the form "OpenCL M.m <vendor info>".
func ParseVersion(s string) (Version, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 || fields[0] != "OpenCL" {
		return Version{}, errors.Newf(errors.Validation, "malformed version string %q", s)
	}
	major, minor, ok := strings.Cut(fields[1], ".")
	if !ok {
		return Version{}, errors.Newf(errors.Validation, "malformed version number %q", fields[1])
	}
	ma, err := strconv.Atoi(major)
	if err != nil {
		return Version{}, errors.Newf(errors.Validation, "malformed major version %q", major)
	}
	mi, err := strconv.Atoi(minor)
	if err != nil {
		return Version{}, errors.Newf(errors.Validation, "malformed minor version %q", minor)
	}
	return Version{ma, mi}, nil
}
