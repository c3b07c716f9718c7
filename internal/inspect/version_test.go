package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tungetti/clinspect/internal/errors"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"OpenCL 1.2 (Build 37)", Version{1, 2}, false},
		{"OpenCL 3.0 CUDA", Version{3, 0}, false},
		{"OpenCL 2.0 AMD-APP (3513.0)", Version{2, 0}, false},
		{"OpenCL 1.1", Version{1, 1}, false},
		{"", Version{}, true},
		{"OpenGL 4.6", Version{}, true},
		{"OpenCL 12", Version{}, true},
		{"OpenCL x.2", Version{}, true},
		{"OpenCL 1.y", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.Validation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersion_AtLeast(t *testing.T) {
	assert.True(t, Version12.AtLeast(Version11))
	assert.True(t, Version11.AtLeast(Version11))
	assert.False(t, Version10.AtLeast(Version11))
	assert.True(t, Version{2, 0}.AtLeast(Version12))
	assert.False(t, Version{1, 2}.AtLeast(Version{2, 0}))
	assert.True(t, Version10.AtLeast(Version{}))
}

func TestVersion_String(t *testing.T) {
	assert.Equal(t, "1.2", Version12.String())
	assert.True(t, Version{}.IsZero())
	assert.False(t, Version10.IsZero())
}
