package property

import (
	"encoding/binary"
	"fmt"

	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/errors"
)

// Outcome tags a Result.
type Outcome int

// Result outcomes.
const (
	// Success carries the property bytes.
	Success Outcome = iota
	// NotApplicable means the property legitimately does not exist here.
	NotApplicable
	// Failed means the API returned a genuine error.
	Failed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case NotApplicable:
		return "n/a"
	case Failed:
		return "error"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the classified outcome of one property query. Data is owned by
// the Result and stays valid after further queries on the same Retriever.
type Result struct {
	Outcome     Outcome
	Param       cl.Param
	Data        []byte
	NeedsEscape bool
	Status      cl.Status
}

// OK reports whether the query succeeded.
func (r Result) OK() bool { return r.Outcome == Success }

// Message returns the status text for failed and not applicable results.
func (r Result) Message() string {
	if r.Outcome == Success {
		return ""
	}
	return r.Status.String()
}

// Err returns the failure as an error value, or nil on success.
func (r Result) Err() error {
	switch r.Outcome {
	case NotApplicable:
		return errors.Newf(errors.PropertyUnavailable, "%s: %s", r.Param, r.Status)
	case Failed:
		return errors.Wrapf(errors.PropertyQuery, r.Status, "%s", r.Param)
	default:
		return nil
	}
}

// Bytes returns the raw property bytes.
func (r Result) Bytes() []byte { return r.Data }

// String decodes a NUL-terminated string.
func (r Result) String() string { return cl.GoString(r.Data) }

// Uint32 decodes a cl_uint (or cl_bool / enum) value.
func (r Result) Uint32() uint32 {
	if len(r.Data) < 4 {
		return 0
	}
	return binary.NativeEndian.Uint32(r.Data)
}

// Uint64 decodes a cl_ulong or cl_bitfield value.
func (r Result) Uint64() uint64 {
	if len(r.Data) < 8 {
		return uint64(r.Uint32())
	}
	return binary.NativeEndian.Uint64(r.Data)
}

// Bool decodes a cl_bool value.
func (r Result) Bool() bool { return r.Uint32() != 0 }

// Size decodes a size_t value.
func (r Result) Size() uint64 {
	sizes := r.Sizes()
	if len(sizes) == 0 {
		return 0
	}
	return sizes[0]
}

// Sizes decodes a size_t array.
func (r Result) Sizes() []uint64 {
	n := len(r.Data) / cl.SizeTBytes
	out := make([]uint64, n)
	for i := range out {
		b := r.Data[i*cl.SizeTBytes:]
		if cl.SizeTBytes == 8 {
			out[i] = binary.NativeEndian.Uint64(b)
		} else {
			out[i] = uint64(binary.NativeEndian.Uint32(b))
		}
	}
	return out
}

// Uint64s decodes a cl_ulong array such as a partition property list.
func (r Result) Uint64s() []uint64 {
	out := make([]uint64, len(r.Data)/8)
	for i := range out {
		out[i] = binary.NativeEndian.Uint64(r.Data[i*8:])
	}
	return out
}
