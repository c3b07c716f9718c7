package cl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "CL_SUCCESS", Success.String())
	assert.Equal(t, "CL_DEVICE_NOT_FOUND", DeviceNotFound.String())
	assert.Equal(t, "CL_INVALID_VALUE", InvalidValue.Error())
	assert.Equal(t, "<unknown error -9999>", Status(-9999).String())
}

func TestStatusByName(t *testing.T) {
	s, ok := StatusByName("CL_BUILD_PROGRAM_FAILURE")
	assert.True(t, ok)
	assert.Equal(t, BuildProgramFailure, s)

	_, ok = StatusByName("CL_NOT_A_STATUS")
	assert.False(t, ok)
}

func TestParam_Names(t *testing.T) {
	assert.Equal(t, "CL_DEVICE_NAME", DeviceName.String())
	assert.Equal(t, "0xBEEF", Param(0xBEEF).String())

	for p, name := range paramNames {
		got, ok := ParamByName(name)
		assert.True(t, ok, name)
		assert.Equal(t, p, got, name)
	}
}
