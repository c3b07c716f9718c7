package fake

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tungetti/clinspect/internal/cl"
	"github.com/tungetti/clinspect/internal/errors"
)

// Document is the YAML fixture layout.
//
//	platforms:
//	  - properties:
//	      CL_PLATFORM_NAME: {string: "Fake CL"}
//	    devices:
//	      - properties:
//	          CL_DEVICE_TYPE: {bitfield: 4}
//	          CL_DEVICE_MAX_WORK_ITEM_SIZES: {sizes: [1024, 1024, 64]}
//	          CL_DEVICE_HALF_FP_CONFIG: {error: CL_INVALID_VALUE}
//	        probe:
//	          preferred_multiple: 32
type Document struct {
	ListError string             `yaml:"list_error,omitempty"`
	Platforms []PlatformDocument `yaml:"platforms"`
}

// PlatformDocument describes one platform in a fixture.
type PlatformDocument struct {
	ListError  string                   `yaml:"list_error,omitempty"`
	Properties map[string]ValueDocument `yaml:"properties"`
	Devices    []DeviceDocument         `yaml:"devices"`
}

// DeviceDocument describes one device in a fixture.
type DeviceDocument struct {
	Properties map[string]ValueDocument `yaml:"properties"`
	Probe      *ProbeDocument           `yaml:"probe,omitempty"`
}

// ProbeDocument configures the compile probe for a device.
type ProbeDocument struct {
	PreferredMultiple *uint64           `yaml:"preferred_multiple,omitempty"`
	Kernels           map[string]uint64 `yaml:"kernels,omitempty"`
	Fail              map[string]string `yaml:"fail,omitempty"`
	BuildLog          string            `yaml:"build_log,omitempty"`
}

// ValueDocument is a typed property value. Exactly one field must be set.
type ValueDocument struct {
	String     *string  `yaml:"string,omitempty"`
	Uint       *uint32  `yaml:"uint,omitempty"`
	Ulong      *uint64  `yaml:"ulong,omitempty"`
	Bitfield   *uint64  `yaml:"bitfield,omitempty"`
	Size       *uint64  `yaml:"size,omitempty"`
	Sizes      []uint64 `yaml:"sizes,omitempty"`
	Ulongs     []uint64 `yaml:"ulongs,omitempty"`
	Bool       *bool    `yaml:"bool,omitempty"`
	Bytes      *string  `yaml:"bytes,omitempty"`
	Error      string   `yaml:"error,omitempty"`
	SizeError  string   `yaml:"size_error,omitempty"`
	ValueError string   `yaml:"value_error,omitempty"`
}

// LoadFile reads a YAML fixture from path.
func LoadFile(path string) (*API, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.Configuration, "failed to read fixture", err).WithOp("fake.LoadFile")
	}
	api, err := Load(data)
	if err != nil {
		return nil, errors.Wrapf(errors.Configuration, err, "invalid fixture %s", path).WithOp("fake.LoadFile")
	}
	return api, nil
}

// Load builds a simulated API from a YAML fixture document.
func Load(data []byte) (*API, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.Configuration, "failed to parse fixture", err)
	}
	return Build(&doc)
}

// Build constructs a simulated API from a decoded fixture document.
func Build(doc *Document) (*API, error) {
	api := New()
	if doc.ListError != "" {
		st, err := parseStatus(doc.ListError)
		if err != nil {
			return nil, err
		}
		api.FailPlatformListing(st)
	}

	for pi, pd := range doc.Platforms {
		p := api.AddPlatform()
		if pd.ListError != "" {
			st, err := parseStatus(pd.ListError)
			if err != nil {
				return nil, err
			}
			p.FailDeviceListing(st)
		}
		if err := applyProperties(&p.Properties, pd.Properties); err != nil {
			return nil, fmt.Errorf("platform %d: %w", pi, err)
		}
		for di, dd := range pd.Devices {
			d := p.AddDevice()
			if err := applyProperties(&d.Properties, dd.Properties); err != nil {
				return nil, fmt.Errorf("platform %d device %d: %w", pi, di, err)
			}
			if dd.Probe != nil {
				if err := applyProbe(d, dd.Probe); err != nil {
					return nil, fmt.Errorf("platform %d device %d: %w", pi, di, err)
				}
			}
		}
	}
	return api, nil
}

func applyProperties(props *Properties, values map[string]ValueDocument) error {
	for name, v := range values {
		param, ok := cl.ParamByName(name)
		if !ok {
			return errors.Newf(errors.Validation, "unknown property %q", name)
		}
		if err := applyValue(props, param, v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func applyValue(props *Properties, param cl.Param, v ValueDocument) error {
	switch {
	case v.Error != "":
		st, err := parseStatus(v.Error)
		if err != nil {
			return err
		}
		props.SetError(param, st)
		return nil
	case v.String != nil:
		props.SetString(param, *v.String)
	case v.Uint != nil:
		props.SetUint(param, *v.Uint)
	case v.Ulong != nil:
		props.SetUlong(param, *v.Ulong)
	case v.Bitfield != nil:
		props.SetUlong(param, *v.Bitfield)
	case v.Size != nil:
		props.SetSize(param, *v.Size)
	case v.Sizes != nil:
		props.SetSizes(param, v.Sizes...)
	case v.Ulongs != nil:
		props.SetUlongs(param, v.Ulongs...)
	case v.Bool != nil:
		props.SetBool(param, *v.Bool)
	case v.Bytes != nil:
		raw, err := hex.DecodeString(strings.ReplaceAll(*v.Bytes, " ", ""))
		if err != nil {
			return errors.Wrap(errors.Validation, "invalid hex bytes", err)
		}
		props.SetBytes(param, raw)
	default:
		if v.ValueError == "" && v.SizeError == "" {
			return errors.New(errors.Validation, "no value given")
		}
		// a phase error alone still needs something for the size query
		props.SetBytes(param, make([]byte, 8))
	}

	if v.SizeError != "" {
		st, err := parseStatus(v.SizeError)
		if err != nil {
			return err
		}
		props.SetSizeError(param, st)
	}
	if v.ValueError != "" {
		st, err := parseStatus(v.ValueError)
		if err != nil {
			return err
		}
		props.SetValueError(param, st)
	}
	return nil
}

func applyProbe(d *Device, pd *ProbeDocument) error {
	if pd.PreferredMultiple != nil {
		d.SetPreferredMultiple(*pd.PreferredMultiple)
	}
	for name, v := range pd.Kernels {
		d.SetKernelMultiple(name, v)
	}
	for stage, status := range pd.Fail {
		switch Stage(stage) {
		case StageContext, StageProgram, StageBuild, StageKernel, StageQuery:
		default:
			return errors.Newf(errors.Validation, "unknown probe stage %q", stage)
		}
		st, err := parseStatus(status)
		if err != nil {
			return err
		}
		d.FailStage(Stage(stage), st)
	}
	if pd.BuildLog != "" {
		d.SetBuildLog(pd.BuildLog)
	}
	return nil
}

func parseStatus(name string) (cl.Status, error) {
	st, ok := cl.StatusByName(strings.TrimSpace(name))
	if !ok {
		return 0, errors.Newf(errors.Validation, "unknown status %q", name)
	}
	return st, nil
}
