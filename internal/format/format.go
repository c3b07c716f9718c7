// Package format turns raw property values into display strings.
// Every function here is pure.
package format

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Classified is a formatted property value.
type Classified struct {
	// Display is the human-readable rendering.
	Display string
	// Raw is the decoded value for machine output, if any.
	Raw interface{}
	// NeedsEscape marks strings containing control or quote characters.
	NeedsEscape bool
}

// Text classifies a string value.
func Text(s string, needsEscape bool) Classified {
	return Classified{Display: s, Raw: s, NeedsEscape: needsEscape}
}

// Value classifies a display string with its raw value.
func Value(display string, raw interface{}) Classified {
	return Classified{Display: display, Raw: raw}
}

// Placeholder classifies a value-less marker such as "n/a".
func Placeholder(display string) Classified {
	return Classified{Display: display}
}

// Sentinels used when there is nothing to show.
const (
	None          = "none"
	NotAvailable  = "n/a"
	UnknownLabel  = "Unknown"
	DetectFailure = "<detection failed>"
)

var byteUnits = []string{"KiB", "MiB", "GiB", "TiB"}

// SignificantDigits is the precision of scaled byte sizes.
const SignificantDigits = 4

// Bytes renders a byte count. Counts below 1024 are shown as is; larger
// counts are annotated with the largest 1024-based unit whose scaled value is
// at least one. The scaled value is truncated, never rounded, to
// SignificantDigits digits, so it stays below 1024 for every unit but TiB.
func Bytes(b uint64) string {
	raw := strconv.FormatUint(b, 10)
	if b < 1024 {
		return raw
	}
	unit := 0
	for unit+1 < len(byteUnits) && b>>(10*uint(unit+2)) > 0 {
		unit++
	}
	shift := 10 * uint(unit+1)
	whole := strconv.FormatUint(b>>shift, 10)
	scaled := whole
	if decimals := SignificantDigits - len(whole); decimals > 0 {
		pow := uint64(1)
		for i := 0; i < decimals; i++ {
			pow *= 10
		}
		rem := b & (1<<shift - 1)
		// rem < 2^40 and pow <= 1000, so the product fits.
		frac := strconv.FormatUint(rem*pow>>shift, 10)
		frac = strings.Repeat("0", decimals-len(frac)) + frac
		if frac = strings.TrimRight(frac, "0"); frac != "" {
			scaled += "." + frac
		}
	}
	return fmt.Sprintf("%s (%s%s)", raw, scaled, byteUnits[unit])
}

// Flag maps one bit to its label.
type Flag struct {
	Bit   uint64
	Label string
}

// Flags renders the labels of the bits set in mask, comma-joined in table
// order. A zero mask renders as empty.
func Flags(mask uint64, table []Flag, empty string) string {
	if mask == 0 {
		return empty
	}
	var labels []string
	for _, f := range table {
		if mask&f.Bit != 0 {
			labels = append(labels, f.Label)
		}
	}
	if len(labels) == 0 {
		return empty
	}
	return strings.Join(labels, ", ")
}

// Enum renders the label at ordinal, or "Unknown" when out of range.
func Enum(ordinal uint64, labels []string) string {
	if ordinal >= uint64(len(labels)) {
		return UnknownLabel
	}
	return labels[ordinal]
}

// FirstBit renders the label of the lowest set bit of mask. Other set bits
// are ignored.
func FirstBit(mask uint64, labels []string) string {
	if mask == 0 {
		return UnknownLabel
	}
	return Enum(uint64(bits.TrailingZeros64(mask)), labels)
}

// Named maps a value (not a bit) to its label.
type Named struct {
	Value uint64
	Label string
}

// List renders the labels of a value list such as partition properties,
// stopping at a zero terminator. Unlisted values render in hex.
func List(values []uint64, table []Named, empty string) string {
	var labels []string
	for _, v := range values {
		if v == 0 {
			break
		}
		labels = append(labels, lookup(v, table))
	}
	if len(labels) == 0 {
		return empty
	}
	return strings.Join(labels, ", ")
}

func lookup(v uint64, table []Named) string {
	for _, n := range table {
		if n.Value == v {
			return n.Label
		}
	}
	return Hex(v)
}

// Label renders the label of a single value from table.
func Label(v uint64, table []Named) string {
	return lookup(v, table)
}

// VectorPair renders preferred and native vector widths.
func VectorPair(preferred, native uint32) string {
	return fmt.Sprintf("%d / %d", preferred, native)
}

// OptionalVectorPair renders the widths of an optional type, annotated with
// the extension that enables it. An empty token means the type is
// unsupported and no widths are shown.
func OptionalVectorPair(preferred, native uint32, token string) string {
	if token == "" {
		return NotAvailable
	}
	return fmt.Sprintf("%s (%s)", VectorPair(preferred, native), token)
}

// Sizes renders a size array as "1024x1024x64".
func Sizes(vs []uint64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, "x")
}

// Bool renders Yes or No.
func Bool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Hex renders v as 0x-prefixed hex.
func Hex(v uint64) string {
	return "0x" + strconv.FormatUint(v, 16)
}

// Uint renders an unsigned integer.
func Uint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// WithUnit renders v followed by a unit suffix, e.g. "1500MHz".
func WithUnit(v uint64, unit string) string {
	return strconv.FormatUint(v, 10) + unit
}

// Annotated renders a value followed by a parenthesized note.
func Annotated(value, note string) string {
	if note == "" {
		return value
	}
	return value + " (" + note + ")"
}
