package inspect

import (
	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/extension"
	"github.com/tungetti/clinspect/internal/format"
	"github.com/tungetti/clinspect/internal/property"
	"github.com/tungetti/clinspect/internal/vendor"
)

// Kind is the underlying value type of a property.
type Kind int

// Property value kinds.
const (
	KindString Kind = iota
	KindUint
	KindUlong
	KindSize
	KindSizes
	KindBool
	KindBitfield
	KindList
	KindBytes
	KindComposite
)

// Formatter classifies a successful query result.
type Formatter func(res property.Result, k Kind) format.Classified

// Computer evaluates a property built from several queries or from work
// other than a single query. The error is reserved for fatal conditions.
type Computer func(dc *deviceContext, d Descriptor) (property.Result, format.Classified, error)

// Descriptor declares one property: what to query, when it is legal to
// query it, and how to display it.
type Descriptor struct {
	ID         string
	Name       string
	Param      cl.Param
	Section    Section
	MinVersion Version
	Extension  extension.Capability
	// Optional properties treat CL_INVALID_VALUE as not applicable.
	Optional bool
	Kind     Kind
	Format   Formatter
	// Absent is displayed instead of omitting the property when its gate fails.
	Absent  string
	Compute Computer
}

func prop(param cl.Param, name string, kind Kind, f Formatter) Descriptor {
	return Descriptor{ID: param.String(), Name: name, Param: param, Kind: kind, Format: f}
}

func composite(id, name string, c Computer) Descriptor {
	return Descriptor{ID: id, Name: name, Kind: KindComposite, Compute: c}
}

func (d Descriptor) since(v Version) Descriptor {
	d.MinVersion = v
	return d
}

func (d Descriptor) ext(c extension.Capability) Descriptor {
	d.Extension = c
	d.Optional = true
	return d
}

func (d Descriptor) optional() Descriptor {
	d.Optional = true
	return d
}

func (d Descriptor) absent(s string) Descriptor {
	d.Absent = s
	return d
}

func section(s Section, ds ...Descriptor) []Descriptor {
	for i := range ds {
		ds[i].Section = s
	}
	return ds
}

func number(res property.Result, k Kind) uint64 {
	switch k {
	case KindUint, KindBool:
		return uint64(res.Uint32())
	case KindSize:
		return res.Size()
	default:
		return res.Uint64()
	}
}

func fmtString(res property.Result, _ Kind) format.Classified {
	return format.Text(res.String(), res.NeedsEscape)
}

func fmtNumber(res property.Result, k Kind) format.Classified {
	v := number(res, k)
	return format.Value(format.Uint(v), v)
}

func fmtBool(res property.Result, _ Kind) format.Classified {
	b := res.Bool()
	return format.Value(format.Bool(b), b)
}

func fmtBytes(res property.Result, k Kind) format.Classified {
	v := number(res, k)
	return format.Value(format.Bytes(v), v)
}

func fmtUnit(unit string) Formatter {
	return func(res property.Result, k Kind) format.Classified {
		v := number(res, k)
		return format.Value(format.WithUnit(v, unit), v)
	}
}

func fmtFlags(table []format.Flag, empty string) Formatter {
	return func(res property.Result, k Kind) format.Classified {
		v := number(res, k)
		return format.Value(format.Flags(v, table, empty), v)
	}
}

func fmtEnum(labels []string) Formatter {
	return func(res property.Result, k Kind) format.Classified {
		v := number(res, k)
		return format.Value(format.Enum(v, labels), v)
	}
}

func fmtFirstBit(labels []string) Formatter {
	return func(res property.Result, k Kind) format.Classified {
		v := number(res, k)
		return format.Value(format.FirstBit(v, labels), v)
	}
}

func fmtList(table []format.Named, empty string) Formatter {
	return func(res property.Result, _ Kind) format.Classified {
		vs := res.Uint64s()
		return format.Value(format.List(vs, table, empty), vs)
	}
}

func fmtSizes(res property.Result, _ Kind) format.Classified {
	vs := res.Sizes()
	return format.Value(format.Sizes(vs), vs)
}

func fmtVendorID(res property.Result, _ Kind) format.Classified {
	v := res.Uint32()
	return format.Value(vendor.VendorID(v), v)
}

// fmtFreeMemory renders the AMD free memory pair, reported in KiB.
func fmtFreeMemory(res property.Result, _ Kind) format.Classified {
	vs := res.Sizes()
	parts := make([]uint64, len(vs))
	display := ""
	for i, v := range vs {
		parts[i] = v * 1024
		if i > 0 {
			display += ", "
		}
		display += format.Bytes(v * 1024)
	}
	return format.Value(display, parts)
}
