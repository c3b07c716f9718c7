package inspect

import (
	"strings"

	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/errors"
	"github.com/tungetti/clinspect/internal/extension"
	"github.com/tungetti/clinspect/internal/format"
	"github.com/tungetti/clinspect/internal/property"
	"github.com/tungetti/clinspect/internal/topology"
	"github.com/tungetti/clinspect/internal/vendor"
)

func notApplicable(param cl.Param) property.Result {
	return property.Result{Outcome: property.NotApplicable, Param: param}
}

// computeVectorPair renders "preferred / native". Native widths only exist
// from 1.1 on. Optional types carry the extension token that enabled them.
func computeVectorPair(pref, native cl.Param) Computer {
	return func(dc *deviceContext, d Descriptor) (property.Result, format.Classified, error) {
		p, err := dc.query(pref, d.Optional)
		if err != nil || !p.OK() {
			return p, format.Classified{}, err
		}
		if !dc.version.AtLeast(Version11) {
			v := p.Uint32()
			return p, format.Value(format.Uint(uint64(v)), []uint32{v}), nil
		}
		n, err := dc.query(native, d.Optional)
		if err != nil || !n.OK() {
			return n, format.Classified{}, err
		}
		pv, nv := p.Uint32(), n.Uint32()
		display := format.VectorPair(pv, nv)
		if d.Extension != "" {
			display = format.Annotated(display, dc.support.Token(d.Extension))
		}
		return p, format.Value(display, []uint32{pv, nv}), nil
	}
}

// computeDetectedExtensions lists the matched token of every capability
// found in the extension string, in catalog order.
func computeDetectedExtensions(dc *deviceContext, d Descriptor) (property.Result, format.Classified, error) {
	caps := dc.support.Detected()
	tokens := make([]string, 0, len(caps))
	for _, c := range caps {
		tokens = append(tokens, dc.support.Token(c))
	}
	display := format.None
	if len(tokens) > 0 {
		display = strings.Join(tokens, ", ")
	}
	return property.Result{Outcome: property.Success, Param: d.Param}, format.Value(display, tokens), nil
}

func computeTopologyAMD(dc *deviceContext, d Descriptor) (property.Result, format.Classified, error) {
	res, err := dc.query(cl.DeviceTopologyAMD, true)
	if err != nil || !res.OK() {
		return res, format.Classified{}, err
	}
	t := topology.DecodeAMD(res.Bytes())
	if a, ok := t.(topology.Address); ok {
		dc.address = &a
	}
	return res, format.Value(t.String(), t), nil
}

func computeTopologyNV(dc *deviceContext, d Descriptor) (property.Result, format.Classified, error) {
	a, res, err := addressNV(dc)
	if err != nil || !res.OK() {
		return res, format.Classified{}, err
	}
	dc.address = &a
	return res, format.Value(a.String(), a), nil
}

// addressNV queries the NV bus and slot. The domain query is newer than the
// other two and defaults to zero when the driver rejects it.
func addressNV(dc *deviceContext) (topology.Address, property.Result, error) {
	bus, err := dc.query(cl.DevicePCIBusIDNV, true)
	if err != nil || !bus.OK() {
		return topology.Address{}, bus, err
	}
	slot, err := dc.query(cl.DevicePCISlotIDNV, true)
	if err != nil || !slot.OK() {
		return topology.Address{}, slot, err
	}
	var domain uint32
	dom, err := dc.query(cl.DevicePCIDomainIDNV, true)
	if err != nil {
		return topology.Address{}, dom, err
	}
	if dom.OK() {
		domain = dom.Uint32()
	}
	return topology.DecodeNV(bus.Uint32(), slot.Uint32(), domain), bus, nil
}

// resolveAddress returns the bus address decoded earlier in the pass, or
// decodes it now when the topology properties were filtered out.
func resolveAddress(dc *deviceContext) (*topology.Address, error) {
	if dc.address != nil {
		return dc.address, nil
	}
	switch {
	case dc.support.Has(extension.AMDAttributes):
		res, err := dc.query(cl.DeviceTopologyAMD, true)
		if err != nil || !res.OK() {
			return nil, err
		}
		if a, ok := topology.DecodeAMD(res.Bytes()).(topology.Address); ok {
			dc.address = &a
		}
	case dc.support.Has(extension.NVAttributes):
		a, res, err := addressNV(dc)
		if err != nil || !res.OK() {
			return nil, err
		}
		dc.address = &a
	}
	return dc.address, nil
}

// computeSysfs looks the decoded bus address up in sysfs. Devices without an
// address, or not present in sysfs, are not applicable.
func computeSysfs(dc *deviceContext, d Descriptor) (property.Result, format.Classified, error) {
	if dc.scanner == nil {
		return notApplicable(d.Param), format.Classified{}, nil
	}
	addr, err := resolveAddress(dc)
	if err != nil {
		return property.Result{}, format.Classified{}, err
	}
	if addr == nil {
		return notApplicable(d.Param), format.Classified{}, nil
	}

	dev, err := dc.scanner.Lookup(addr.SysfsName())
	if errors.IsCode(err, errors.NotFound) {
		dc.logger.Debug("device not in sysfs", "address", addr.SysfsName())
		return notApplicable(d.Param), format.Classified{}, nil
	}
	if err != nil {
		dc.logger.Debug("sysfs lookup failed", "address", addr.SysfsName(), "error", err)
		return property.Result{Outcome: property.Failed, Param: d.Param}, format.Placeholder("<error: " + err.Error() + ">"), nil
	}
	return property.Result{Outcome: property.Success, Param: d.Param}, format.Value(dev.String(), dev), nil
}

func computeComputeCapability(dc *deviceContext, d Descriptor) (property.Result, format.Classified, error) {
	major, err := dc.query(cl.DeviceComputeCapabilityMajorNV, true)
	if err != nil || !major.OK() {
		return major, format.Classified{}, err
	}
	minor, err := dc.query(cl.DeviceComputeCapabilityMinorNV, true)
	if err != nil || !minor.OK() {
		return minor, format.Classified{}, err
	}
	ma, mi := major.Uint32(), minor.Uint32()
	return major, format.Value(vendor.ComputeCapability(ma, mi), []uint32{ma, mi}), nil
}

// computeProbe runs the work-group probe. A failed probe is a property
// failure displayed as a detection failure, never a fatal error.
func computeProbe(dc *deviceContext, d Descriptor) (property.Result, format.Classified, error) {
	if dc.probe == nil {
		return notApplicable(d.Param), format.Classified{}, nil
	}
	pr := dc.probe.Run(dc.platform, dc.device)
	if !pr.OK() {
		dc.logger.Debug("work-group probe failed", "stage", pr.Stage, "status", pr.Status)
		return property.Result{Outcome: property.Failed, Param: d.Param, Status: pr.Status}, pr.Classified(), nil
	}
	return property.Result{Outcome: property.Success, Param: d.Param}, pr.Classified(), nil
}

// computeImageSize renders image dimensions as "WxH pixels".
func computeImageSize(params ...cl.Param) Computer {
	return func(dc *deviceContext, d Descriptor) (property.Result, format.Classified, error) {
		dims := make([]uint64, 0, len(params))
		var first property.Result
		for i, p := range params {
			res, err := dc.query(p, d.Optional)
			if err != nil || !res.OK() {
				return res, format.Classified{}, err
			}
			if i == 0 {
				first = res
			}
			dims = append(dims, res.Size())
		}
		return first, format.Value(format.Sizes(dims)+" pixels", dims), nil
	}
}
