package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tungetti/clinspect/internal/errors"
)

func TestParseDevicePair(t *testing.T) {
	tests := []struct {
		input   string
		want    DevicePair
		wantErr bool
	}{
		{"0:0", DevicePair{0, 0}, false},
		{"1:3", DevicePair{1, 3}, false},
		{" 2:1 ", DevicePair{2, 1}, false},
		{"1", DevicePair{}, true},
		{"a:1", DevicePair{}, true},
		{"1:b", DevicePair{}, true},
		{"-1:0", DevicePair{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDevicePair(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.Validation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, mustPair(t, got.String()))
		})
	}
}

func mustPair(t *testing.T, s string) DevicePair {
	t.Helper()
	p, err := ParseDevicePair(s)
	require.NoError(t, err)
	return p
}

func TestFilter_EmptyAdmitsEverything(t *testing.T) {
	f, err := NewFilter(nil, nil)
	require.NoError(t, err)

	for p := 0; p < 3; p++ {
		assert.True(t, f.AdmitsPlatform(p))
		for d := 0; d < 3; d++ {
			assert.True(t, f.AdmitsDevice(p, d))
		}
	}
	assert.True(t, f.AdmitsProperty("CL_DEVICE_NAME"))
	assert.True(t, f.AdmitsProperty())
}

func TestFilter_Devices(t *testing.T) {
	f, err := NewFilter([]string{"0:1", "2:0"}, nil)
	require.NoError(t, err)

	assert.True(t, f.AdmitsDevice(0, 1))
	assert.True(t, f.AdmitsDevice(2, 0))
	assert.False(t, f.AdmitsDevice(0, 0))
	assert.False(t, f.AdmitsDevice(1, 1))

	assert.True(t, f.AdmitsPlatform(0))
	assert.False(t, f.AdmitsPlatform(1))
	assert.True(t, f.AdmitsPlatform(2))

	_, err = NewFilter([]string{"bad"}, nil)
	assert.Error(t, err)
}

func TestFilter_Properties(t *testing.T) {
	f, err := NewFilter(nil, []string{"MEM", " ", "clock"})
	require.NoError(t, err)
	assert.Equal(t, []string{"mem", "clock"}, f.Properties)

	tests := []struct {
		names []string
		want  bool
	}{
		{[]string{"CL_DEVICE_GLOBAL_MEM_SIZE"}, true},
		{[]string{"CL_DEVICE_MAX_CLOCK_FREQUENCY", "Max clock frequency"}, true},
		{[]string{"CL_DEVICE_NAME", "Device Name"}, false},
		{[]string{"CL_DEVICE_TYPE", "Global memory size"}, true},
		{nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.AdmitsProperty(tt.names...), "%v", tt.names)
	}
}
