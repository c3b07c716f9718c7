// Package property implements the two-phase property query protocol and the
// classification of its outcomes.
package property

import (
	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/errors"
	"github.com/tungetti/clinspect/internal/logging"
)

// DefaultMaxSize caps the scratch buffer. A property claiming more than this is
// treated as an allocation failure.
const DefaultMaxSize = 1 << 20

// StrictProbeSize is the fixed buffer used to re-verify ambiguous failures in
// strict size mode.
const StrictProbeSize = 4096

// Retriever queries properties of one device (or platform) at a time.
//
// A Retriever owns a scratch buffer that grows but never shrinks, so it must
// not be shared between concurrent inspections.
type Retriever struct {
	api     cl.API
	logger  logging.Logger
	buf     []byte
	maxSize int
	strict  bool
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithLogger sets the logger used for debug output.
func WithLogger(l logging.Logger) Option {
	return func(r *Retriever) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMaxSize sets the largest property size the Retriever will allocate.
func WithMaxSize(n int) Option {
	return func(r *Retriever) {
		if n > 0 {
			r.maxSize = n
		}
	}
}

// WithStrictSize enables re-verification of ambiguous CL_INVALID_VALUE
// failures with a fixed-size probe buffer.
func WithStrictSize(strict bool) Option {
	return func(r *Retriever) {
		r.strict = strict
	}
}

// NewRetriever creates a Retriever over api.
func NewRetriever(api cl.API, opts ...Option) *Retriever {
	r := &Retriever{
		api:     api,
		logger:  logging.NewNop(),
		maxSize: DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Query describes one property request.
type Query struct {
	Param cl.Param
	// Optional properties classify CL_INVALID_VALUE as NotApplicable.
	Optional bool
	// Text marks string properties, whose results carry NeedsEscape.
	Text bool
}

type infoFunc func(param cl.Param, buf []byte) (int, cl.Status)

// Device queries a device property. The error is non-nil only for the fatal
// OutOfMemory condition; API failures are reported through the Result.
func (r *Retriever) Device(dev cl.DeviceID, q Query) (Result, error) {
	return r.query(q, func(param cl.Param, buf []byte) (int, cl.Status) {
		return r.api.GetDeviceInfo(dev, param, buf)
	})
}

// Platform queries a platform property.
func (r *Retriever) Platform(p cl.PlatformID, q Query) (Result, error) {
	return r.query(q, func(param cl.Param, buf []byte) (int, cl.Status) {
		return r.api.GetPlatformInfo(p, param, buf)
	})
}

// Capacity returns the current scratch buffer capacity.
func (r *Retriever) Capacity() int { return cap(r.buf) }

func (r *Retriever) query(q Query, info infoFunc) (Result, error) {
	size, st := info(q.Param, nil)
	if !st.OK() {
		if st == cl.InvalidValue && r.strict {
			return r.verify(q, info)
		}
		return r.classify(q, st)
	}

	if err := r.grow(q.Param, size); err != nil {
		return Result{}, err
	}

	if size > 0 {
		n, st := info(q.Param, r.buf[:size])
		if !st.OK() {
			return r.classify(q, st)
		}
		size = n
	}
	return r.success(q, r.buf[:size]), nil
}

// verify disambiguates a CL_INVALID_VALUE from the size query by retrying the
// value query with a fixed buffer.
func (r *Retriever) verify(q Query, info infoFunc) (Result, error) {
	if err := r.grow(q.Param, StrictProbeSize); err != nil {
		return Result{}, err
	}
	n, st := info(q.Param, r.buf[:StrictProbeSize])
	if !st.OK() {
		return r.classify(q, st)
	}
	r.logger.Debug("strict size probe recovered property", "param", q.Param, "size", n)
	return r.success(q, r.buf[:n]), nil
}

func (r *Retriever) grow(param cl.Param, size int) error {
	if size > r.maxSize {
		return errors.Newf(errors.OutOfMemory, "%s needs %d bytes, limit is %d", param, size, r.maxSize).
			WithOp("property.Retriever")
	}
	if size > cap(r.buf) {
		r.buf = make([]byte, size)
	}
	return nil
}

func (r *Retriever) success(q Query, data []byte) Result {
	res := Result{
		Outcome: Success,
		Param:   q.Param,
		Data:    append([]byte(nil), data...),
		Status:  cl.Success,
	}
	if q.Text {
		res.NeedsEscape = needsEscape(cl.GoString(res.Data))
	}
	return res
}

func (r *Retriever) classify(q Query, st cl.Status) (Result, error) {
	switch {
	case st == cl.OutOfHostMemory:
		return Result{}, errors.Wrapf(errors.OutOfMemory, st, "querying %s", q.Param).WithOp("property.Retriever")
	case st == cl.DeviceNotFound, st == cl.InvalidValue && q.Optional:
		r.logger.Debug("property not applicable", "param", q.Param, "status", st)
		return Result{Outcome: NotApplicable, Param: q.Param, Status: st}, nil
	default:
		r.logger.Debug("property query failed", "param", q.Param, "status", st)
		return Result{Outcome: Failed, Param: q.Param, Status: st}, nil
	}
}

func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == 0x7f || c == '"' || c == '\\' {
			return true
		}
	}
	return false
}
