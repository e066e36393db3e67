package template

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/cpukit/hostcpu"
	"github.com/joshuapare/cpukit/pkg/types"
	"github.com/joshuapare/cpukit/template/static"
)

// fakeHost satisfies both hostcpu interfaces with canned answers.
type fakeHost struct {
	vendor    string
	vendorErr error
	model     hostcpu.Model
	modelErr  error
}

func (f *fakeHost) VendorID() (string, error)     { return f.vendor, f.vendorErr }
func (f *fakeHost) Model() (hostcpu.Model, error) { return f.model, f.modelErr }

var (
	intelCascadeLake = &fakeHost{vendor: hostcpu.VendorIntel, model: hostcpu.Model{Family: 6, Model: 0x55, Stepping: 7}}
	intelSkylake     = &fakeHost{vendor: hostcpu.VendorIntel, model: hostcpu.Model{Family: 6, Model: 0x55, Stepping: 4}}
	amdZen2          = &fakeHost{vendor: hostcpu.VendorAMD, model: hostcpu.Model{Family: 0x17, Model: 0x31, Stepping: 0}}
)

func TestResolveNoSelector(t *testing.T) {
	resolved, err := Resolve(NoSelector(), intelCascadeLake, intelCascadeLake)
	require.NoError(t, err)
	assert.True(t, resolved.Owned)
	assert.Equal(t, &types.CustomTemplate{}, resolved.Template)
}

func TestResolveZeroSelectorMeansNone(t *testing.T) {
	resolved, err := Resolve(Selector{}, amdZen2, amdZen2)
	require.NoError(t, err)
	assert.True(t, resolved.Owned)
	assert.Empty(t, resolved.Template.CpuidModifiers)
	assert.Empty(t, resolved.Template.MsrModifiers)
}

func TestResolveCustomReturnsSamePointer(t *testing.T) {
	custom, err := Unmarshal([]byte(`{"msr_modifiers": [{"addr": "0x10a", "bitmap": "0bxxxxxxx1"}]}`))
	require.NoError(t, err)

	// A host whose queries always fail: the custom path must never touch it.
	brokenHost := &fakeHost{vendorErr: errors.New("no cpuid here"), modelErr: errors.New("no cpuid here")}

	resolved, err := Resolve(CustomSelector(custom), brokenHost, brokenHost)
	require.NoError(t, err)
	assert.False(t, resolved.Owned)
	assert.Same(t, custom, resolved.Template)
}

func TestResolveStaticIntelTemplates(t *testing.T) {
	cases := []struct {
		id       types.StaticTemplate
		expected *types.CustomTemplate
	}{
		{types.StaticC3, static.C3()},
		{types.StaticT2, static.T2()},
		{types.StaticT2S, static.T2S()},
		{types.StaticT2CL, static.T2CL()},
	}
	for _, tc := range cases {
		t.Run(tc.id.String(), func(t *testing.T) {
			resolved, err := Resolve(StaticSelector(tc.id), intelCascadeLake, intelCascadeLake)
			require.NoError(t, err)
			assert.True(t, resolved.Owned)
			assert.Equal(t, tc.expected, resolved.Template)

			// AMD host: every Intel template is rejected.
			_, err = Resolve(StaticSelector(tc.id), amdZen2, amdZen2)
			require.Error(t, err)
			assert.True(t, types.IsKind(err, types.ErrKindVendorMismatch))
		})
	}
}

func TestResolveT2CLBelowCascadeLake(t *testing.T) {
	_, err := Resolve(StaticSelector(types.StaticT2CL), intelSkylake, intelSkylake)
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrKindCpuModel))
}

func TestResolveT2A(t *testing.T) {
	resolved, err := Resolve(StaticSelector(types.StaticT2A), amdZen2, amdZen2)
	require.NoError(t, err)
	assert.True(t, resolved.Owned)
	assert.Equal(t, static.T2A(), resolved.Template)

	_, err = Resolve(StaticSelector(types.StaticT2A), intelCascadeLake, intelCascadeLake)
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrKindVendorMismatch))
}

func TestResolveNoneSentinelNeverResolves(t *testing.T) {
	for _, host := range []*fakeHost{intelCascadeLake, intelSkylake, amdZen2} {
		_, err := Resolve(StaticSelector(types.StaticNone), host, host)
		require.Error(t, err)
		assert.True(t, types.IsKind(err, types.ErrKindInvalidStaticTemplate))
		assert.Contains(t, err.Error(), "None")
	}
}

func TestResolveVendorQueryFailure(t *testing.T) {
	cause := errors.New("cpuid unavailable")
	broken := &fakeHost{vendorErr: cause}

	_, err := Resolve(StaticSelector(types.StaticC3), broken, broken)
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrKindVendorQuery))
	assert.ErrorIs(t, err, cause)
}

func TestResolveModelQueryFailure(t *testing.T) {
	cause := errors.New("cpuinfo truncated")
	broken := &fakeHost{vendor: hostcpu.VendorIntel, modelErr: cause}

	_, err := Resolve(StaticSelector(types.StaticT2CL), broken, broken)
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrKindVendorQuery))
	assert.ErrorIs(t, err, cause)
}

// Two resolutions of the same static template return equal but distinct
// values: the catalog never hands out shared state.
func TestResolveStaticTemplatesAreFresh(t *testing.T) {
	first, err := Resolve(StaticSelector(types.StaticT2S), intelCascadeLake, intelCascadeLake)
	require.NoError(t, err)
	second, err := Resolve(StaticSelector(types.StaticT2S), intelCascadeLake, intelCascadeLake)
	require.NoError(t, err)

	assert.Equal(t, first.Template, second.Template)
	assert.NotSame(t, first.Template, second.Template)
}

func TestRequiredVendor(t *testing.T) {
	assert.Equal(t, hostcpu.VendorIntel, RequiredVendor(types.StaticC3))
	assert.Equal(t, hostcpu.VendorIntel, RequiredVendor(types.StaticT2))
	assert.Equal(t, hostcpu.VendorIntel, RequiredVendor(types.StaticT2S))
	assert.Equal(t, hostcpu.VendorIntel, RequiredVendor(types.StaticT2CL))
	assert.Equal(t, hostcpu.VendorAMD, RequiredVendor(types.StaticT2A))
	assert.Equal(t, "", RequiredVendor(types.StaticNone))
}
