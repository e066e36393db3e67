package static

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/cpukit/pkg/types"
)

func catalog() map[string]func() *types.CustomTemplate {
	return map[string]func() *types.CustomTemplate{
		"C3":   C3,
		"T2":   T2,
		"T2S":  T2S,
		"T2CL": T2CL,
		"T2A":  T2A,
	}
}

// Every bitmap in the catalog must keep its value inside its filter: bits
// outside the filter are don't-care and must be zero in the value.
func TestCatalogBitmapContainment(t *testing.T) {
	for name, build := range catalog() {
		t.Run(name, func(t *testing.T) {
			template := build()
			for _, leaf := range template.CpuidModifiers {
				for _, m := range leaf.Modifiers {
					assert.Zero(t, m.Bitmap.Value&^m.Bitmap.Filter,
						"leaf 0x%x %s value escapes filter", leaf.Leaf, m.Register)
					// CPUID registers are 32 bits wide.
					assert.Zero(t, m.Bitmap.Filter>>32,
						"leaf 0x%x %s filter exceeds 32 bits", leaf.Leaf, m.Register)
				}
			}
			for _, msr := range template.MsrModifiers {
				assert.Zero(t, msr.Bitmap.Value&^msr.Bitmap.Filter,
					"MSR 0x%x value escapes filter", msr.Addr)
			}
		})
	}
}

// Each constructor call must hand out a freshly owned value.
func TestCatalogReturnsFreshTemplates(t *testing.T) {
	for name, build := range catalog() {
		t.Run(name, func(t *testing.T) {
			first := build()
			second := build()
			require.Equal(t, first, second)
			assert.NotSame(t, first, second)

			// Mutating one copy must not leak into the next.
			require.NotEmpty(t, first.CpuidModifiers)
			first.CpuidModifiers[0].Leaf = 0xdead
			assert.NotEqual(t, first.CpuidModifiers[0].Leaf, build().CpuidModifiers[0].Leaf)
		})
	}
}

func TestT2VariantsShareCpuidSurface(t *testing.T) {
	base := T2()
	assert.Equal(t, base.CpuidModifiers, T2S().CpuidModifiers)
	assert.Equal(t, base.CpuidModifiers, T2CL().CpuidModifiers)

	assert.Empty(t, base.MsrModifiers)
	assert.NotEmpty(t, T2S().MsrModifiers)
	assert.NotEmpty(t, T2CL().MsrModifiers)
}

func TestCatalogPinsCpuGeneration(t *testing.T) {
	// Leaf 0x1 EAX carries family/model/stepping; every template pins it.
	wantEAX := map[string]uint64{
		"C3":  0x000306e4,
		"T2":  0x000306f2,
		"T2A": 0x00830f10,
	}
	for name, want := range wantEAX {
		template := catalog()[name]()
		require.NotEmpty(t, template.CpuidModifiers)
		leaf := template.CpuidModifiers[0]
		assert.Equal(t, uint32(leafFeatures), leaf.Leaf)
		require.NotEmpty(t, leaf.Modifiers)
		assert.Equal(t, types.EAX, leaf.Modifiers[0].Register)
		assert.Equal(t, want, leaf.Modifiers[0].Bitmap.Value, "%s leaf 0x1 eax", name)
	}
}
