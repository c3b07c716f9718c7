// Package extension detects optional capabilities from an advertised
// extension string.
package extension

import "strings"

// Capability is a logical optional capability.
type Capability string

// Known capabilities.
const (
	FP16              Capability = "fp16"
	FP64              Capability = "fp64"
	NVAttributes      Capability = "nv_attrs"
	AMDAttributes     Capability = "amd_attrs"
	AtomicCounters    Capability = "atomic_counters"
	Image2DFromBuffer Capability = "image2d_from_buffer"
	Fission           Capability = "fission"
	SPIR              Capability = "spir"
	ICD               Capability = "icd"
)

// Entry maps a capability to the tokens that imply it, in order of preference.
type Entry struct {
	Capability Capability
	Tokens     []string
}

// Catalog is an ordered list of capability entries.
type Catalog []Entry

// DeviceCatalog lists the capabilities detected on devices.
var DeviceCatalog = Catalog{
	{FP16, []string{"cl_khr_fp16"}},
	{FP64, []string{"cl_khr_fp64", "cl_amd_fp64"}},
	{NVAttributes, []string{"cl_nv_device_attribute_query"}},
	{AMDAttributes, []string{"cl_amd_device_attribute_query"}},
	{AtomicCounters, []string{"cl_ext_atomic_counters_64", "cl_ext_atomic_counters_32"}},
	{Image2DFromBuffer, []string{"cl_khr_image2d_from_buffer"}},
	{Fission, []string{"cl_ext_device_fission"}},
	{SPIR, []string{"cl_khr_spir"}},
}

// PlatformCatalog lists the capabilities detected on platforms.
var PlatformCatalog = Catalog{
	{ICD, []string{"cl_khr_icd"}},
}

// Support records, per capability, the token that matched.
type Support struct {
	matched map[Capability]string
	order   []Capability
}

// Detect scans extensions for every catalog entry. Matching is a literal
// substring search; for capabilities with several tokens the first listed
// token that is present wins.
func Detect(extensions string, catalog Catalog) Support {
	s := Support{matched: make(map[Capability]string)}
	for _, e := range catalog {
		for _, tok := range e.Tokens {
			if tok != "" && strings.Contains(extensions, tok) {
				s.matched[e.Capability] = tok
				s.order = append(s.order, e.Capability)
				break
			}
		}
	}
	return s
}

// Has reports whether the capability was detected.
func (s Support) Has(c Capability) bool {
	_, ok := s.matched[c]
	return ok
}

// Token returns the matched token for c, or "" when c is absent.
func (s Support) Token(c Capability) string {
	return s.matched[c]
}

// Detected returns the detected capabilities in catalog order.
func (s Support) Detected() []Capability {
	return append([]Capability(nil), s.order...)
}

// Len returns the number of detected capabilities.
func (s Support) Len() int { return len(s.order) }
