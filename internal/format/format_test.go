package format

import (
	"fmt"
	"math"
	"math/bits"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tungetti/clinspect/internal/cl"
)

func TestBytes(t *testing.T) {
	tests := []struct {
		in       uint64
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{512, "512"},
		{1023, "1023"},
		{1024, "1024 (1KiB)"},
		{2048, "2048 (2KiB)"},
		{65536, "65536 (64KiB)"},
		{1536 * 1024, "1572864 (1.5MiB)"},
		{1610612736, "1610612736 (1.5GiB)"},
		{8 << 30, "8589934592 (8GiB)"},
		{4242538496, "4242538496 (3.951GiB)"},
		{1 << 40, "1099511627776 (1TiB)"},
		{3 << 50, "3377699720527872 (3072TiB)"},
		{1<<20 - 1, "1048575 (1023KiB)"},
		{1<<30 - 1, "1073741823 (1023MiB)"},
		{1<<40 - 1, "1099511627775 (1023GiB)"},
		{1<<21 - 1, "2097151 (1.999MiB)"},
		{math.MaxUint64, "18446744073709551615 (16777215TiB)"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.expected, Bytes(tt.in))
		})
	}
}

// The chosen unit is the largest one whose scaled value is at least one.
func TestBytes_UnitChoice(t *testing.T) {
	units := []string{"", "KiB", "MiB", "GiB", "TiB"}
	for _, b := range []uint64{0, 7, 1000, 1024, 5000, 1 << 20, 3<<20 + 17, 1<<30 - 1, 1 << 30, 5 << 40, math.MaxUint64} {
		s := Bytes(b)
		want := 0
		for want+1 < len(units) && b>>(10*uint(want+1)) >= 1 {
			want++
		}
		if want == 0 {
			assert.NotContains(t, s, "(", "%d", b)
			continue
		}
		assert.True(t, strings.HasSuffix(s, units[want]+")"), "%d -> %s", b, s)
		assert.NotContains(t, s, "e+", "%d -> %s", b, s)
	}
}

func TestFlags(t *testing.T) {
	assert.Equal(t, "none", Flags(0, FPConfigFlags, None))
	assert.Equal(t, "n/a", Flags(0, QueueFlags, NotAvailable))
	assert.Equal(t, "Denormals, Round to nearest",
		Flags(cl.FPDenorm|cl.FPRoundToNearest, FPConfigFlags, None))
	assert.Equal(t, "Out-of-order execution, Profiling",
		Flags(cl.QueueProfilingEnable|cl.QueueOutOfOrderExecModeEnable, QueueFlags, None))
	assert.Equal(t, "none", Flags(1<<40, ExecFlags, None), "bits outside the table")
}

// A label is present iff its bit is set, in table order.
func TestFlags_Property(t *testing.T) {
	for mask := uint64(1); mask < 1<<8; mask++ {
		got := Flags(mask, FPConfigFlags, None)
		var want []string
		for _, f := range FPConfigFlags {
			if mask&f.Bit != 0 {
				want = append(want, f.Label)
			}
		}
		assert.Equal(t, strings.Join(want, ", "), got)
	}
}

func TestEnum(t *testing.T) {
	assert.Equal(t, "None", Enum(0, CacheTypeLabels))
	assert.Equal(t, "Read/Write", Enum(2, CacheTypeLabels))
	assert.Equal(t, "Unknown", Enum(3, CacheTypeLabels))
	assert.Equal(t, "Unknown", Enum(1<<63, LocalMemTypeLabels))
}

func TestFirstBit(t *testing.T) {
	assert.Equal(t, "GPU", FirstBit(cl.DeviceTypeGPU, DeviceTypeLabels))
	assert.Equal(t, "CPU", FirstBit(cl.DeviceTypeCPU|cl.DeviceTypeGPU, DeviceTypeLabels))
	assert.Equal(t, "Default", FirstBit(cl.DeviceTypeDefault|cl.DeviceTypeAccelerator, DeviceTypeLabels))
	assert.Equal(t, "Unknown", FirstBit(0, DeviceTypeLabels))
	assert.Equal(t, "Unknown", FirstBit(1<<9, DeviceTypeLabels))
	assert.Equal(t, 2, bits.TrailingZeros64(cl.DeviceTypeGPU))
}

func TestList(t *testing.T) {
	assert.Equal(t, "equally, by counts",
		List([]uint64{cl.PartitionEqually, cl.PartitionByCounts, 0, cl.PartitionByAffinityDomain}, PartitionLabels, None))
	assert.Equal(t, "None", List(nil, PartitionLabels, "None"))
	assert.Equal(t, "None", List([]uint64{0}, PartitionLabels, "None"))
	assert.Equal(t, "0x1234", List([]uint64{0x1234}, PartitionLabels, None))
	assert.Equal(t, "by names", Label(cl.PartitionByNamesEXT, PartitionEXTLabels))
}

func TestVectorPair(t *testing.T) {
	assert.Equal(t, "4 / 4", VectorPair(4, 4))
	assert.Equal(t, "1 / 1 (cl_khr_fp64)", OptionalVectorPair(1, 1, "cl_khr_fp64"))
	assert.Equal(t, "n/a", OptionalVectorPair(0, 0, ""))
}

func TestScalars(t *testing.T) {
	assert.Equal(t, "1024x1024x64", Sizes([]uint64{1024, 1024, 64}))
	assert.Equal(t, "", Sizes(nil))
	assert.Equal(t, "Yes", Bool(true))
	assert.Equal(t, "No", Bool(false))
	assert.Equal(t, "0x10de", Hex(0x10de))
	assert.Equal(t, "42", Uint(42))
	assert.Equal(t, "1500MHz", WithUnit(1500, "MHz"))
	assert.Equal(t, "8.6 (Ampere)", Annotated("8.6", "Ampere"))
	assert.Equal(t, "8.6", Annotated("8.6", ""))
}

func TestClassified(t *testing.T) {
	c := Text("a\tb", true)
	assert.Equal(t, "a\tb", c.Display)
	assert.Equal(t, "a\tb", c.Raw)
	assert.True(t, c.NeedsEscape)

	v := Value("2048 (2KiB)", uint64(2048))
	assert.Equal(t, uint64(2048), v.Raw)
	assert.False(t, v.NeedsEscape)

	p := Placeholder(DetectFailure)
	assert.Nil(t, p.Raw)
	assert.Equal(t, "<detection failed>", p.Display)
}
