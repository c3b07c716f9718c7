//go:build !opencl || !cgo

package cl

import "github.com/tungetti/clinspect/internal/errors"

// NewNative returns the API backed by the system OpenCL library. This build
// was compiled without the "opencl" tag, so only the fixture backend works.
func NewNative() (API, error) {
	return nil, errors.ErrUnsupported
}
