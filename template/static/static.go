// Package static holds the built-in CPU template catalog.
//
// Each constructor returns a freshly built template the caller owns; the
// catalog keeps no shared state, so resolved templates can never alias each
// other. The bit patterns normalize guest-visible CPU identification to a
// fixed generation per template family:
//
//   - C3: Ivy Bridge era Intel feature surface.
//   - T2, T2S, T2CL: Haswell era Intel feature surface; T2S and T2CL add
//     MSR pinning for side-channel mitigation visibility (T2S for safe
//     snapshot movement, T2CL for Cascade Lake and newer hosts).
//   - T2A: the T2 analogue for AMD (Zen 2 era feature surface).
package static

import "github.com/joshuapare/cpukit/pkg/types"

// CPUID leaves referenced by the catalog.
const (
	leafFeatures    = 0x1
	leafStructExt   = 0x7
	leafXsave       = 0xd
	leafExtFeatures = 0x80000001
)

// MSR addresses referenced by the catalog.
const (
	msrIA32SpecCtrl         = 0x48
	msrIA32ArchCapabilities = 0x10a
	msrAmdDeCfg             = 0xc0011029
)

// fv builds a filter/value pair. Callers keep value inside filter; the
// catalog is covered by tests asserting that containment.
func fv(filter, value uint64) types.RegisterValueFilter {
	return types.RegisterValueFilter{Filter: filter, Value: value}
}

// pin returns a pair that forces all 32 low register bits to value.
func pin32(value uint32) types.RegisterValueFilter {
	return fv(0xffffffff, uint64(value))
}

// C3 returns the C3 template: guest identification pinned to an Ivy Bridge
// class CPU. Intel hosts only.
func C3() *types.CustomTemplate {
	return &types.CustomTemplate{
		CpuidModifiers: []types.LeafModifier{
			{
				Leaf: leafFeatures, Subleaf: 0x0,
				Modifiers: []types.RegisterModifier{
					// Family 6, model 0x3e, stepping 4 in the low 20 bits.
					{Register: types.EAX, Bitmap: fv(0x000fffff, 0x000306e4)},
					// Clear MOVBE, TSC-deadline, F16C, RDRAND.
					{Register: types.ECX, Bitmap: fv(0x61400000, 0x00000000)},
				},
			},
			{
				Leaf: leafStructExt, Subleaf: 0x0,
				Modifiers: []types.RegisterModifier{
					// Structured extended features were introduced after Ivy
					// Bridge; hide the whole leaf's EBX surface.
					{Register: types.EBX, Bitmap: pin32(0x00000000)},
				},
			},
			{
				Leaf: leafExtFeatures, Subleaf: 0x0,
				Modifiers: []types.RegisterModifier{
					// Clear LZCNT and PREFETCHW.
					{Register: types.ECX, Bitmap: fv(0x00000120, 0x00000000)},
					// Clear RDTSCP.
					{Register: types.EDX, Bitmap: fv(0x08000000, 0x00000000)},
				},
			},
		},
	}
}

// T2 returns the T2 template: guest identification pinned to a Haswell
// class CPU. Intel hosts only.
func T2() *types.CustomTemplate {
	return &types.CustomTemplate{
		CpuidModifiers: t2CpuidModifiers(),
	}
}

// T2S returns the T2S template: T2 plus IA32_ARCH_CAPABILITIES pinned
// clear, so a snapshot taken on one host never advertises hardware
// mitigations a restore host may lack. Intel hosts only.
func T2S() *types.CustomTemplate {
	return &types.CustomTemplate{
		CpuidModifiers: t2CpuidModifiers(),
		MsrModifiers: []types.MsrModifier{
			// All currently defined capability bits forced to zero.
			{Addr: msrIA32ArchCapabilities, Bitmap: fv(0x00000000000fffff, 0x0)},
		},
	}
}

// T2CL returns the T2CL template: T2 for Cascade Lake or newer hosts, where
// the hardware mitigation bits can be passed through as set. Intel hosts at
// or above Cascade Lake only.
func T2CL() *types.CustomTemplate {
	return &types.CustomTemplate{
		CpuidModifiers: t2CpuidModifiers(),
		MsrModifiers: []types.MsrModifier{
			// RDCL_NO, IBRS_ALL, RSBA, SKIP_L1DFL_VMENTRY, MDS_NO asserted.
			{Addr: msrIA32ArchCapabilities, Bitmap: fv(0x000000000000002f, 0x000000000000002b)},
			// Leave speculation control to the guest, pinned visible-clear.
			{Addr: msrIA32SpecCtrl, Bitmap: fv(0x0000000000000007, 0x0)},
		},
	}
}

// T2A returns the T2A template: the T2 feature surface on an AMD host,
// pinned to a Zen 2 class CPU. AMD hosts only.
func T2A() *types.CustomTemplate {
	return &types.CustomTemplate{
		CpuidModifiers: []types.LeafModifier{
			{
				Leaf: leafFeatures, Subleaf: 0x0,
				Modifiers: []types.RegisterModifier{
					// Family 0x17 (extended), model 0x31, stepping 0.
					{Register: types.EAX, Bitmap: fv(0x0fffffff, 0x00830f10)},
					// Clear MOVBE, TSC-deadline, F16C, RDRAND, OSXSAVE kept.
					{Register: types.ECX, Bitmap: fv(0x61400000, 0x00000000)},
				},
			},
			{
				Leaf: leafStructExt, Subleaf: 0x0,
				Modifiers: []types.RegisterModifier{
					// Clear every AVX-512 family bit plus SGX and RTM/HLE.
					{Register: types.EBX, Bitmap: fv(0xdcd30810, 0x00000000)},
				},
			},
			{
				Leaf: leafExtFeatures, Subleaf: 0x0,
				Modifiers: []types.RegisterModifier{
					// Clear TOPOEXT and PERFCTR extensions.
					{Register: types.ECX, Bitmap: fv(0x00c00000, 0x00000000)},
				},
			},
		},
		MsrModifiers: []types.MsrModifier{
			// DE_CFG bit 1: force lock prefix serialization semantics.
			{Addr: msrAmdDeCfg, Bitmap: fv(0x0000000000000002, 0x0000000000000002)},
		},
	}
}

// t2CpuidModifiers is the CPUID surface shared by T2, T2S and T2CL. Each
// call builds a fresh slice so every returned template is independently
// owned.
func t2CpuidModifiers() []types.LeafModifier {
	return []types.LeafModifier{
		{
			Leaf: leafFeatures, Subleaf: 0x0,
			Modifiers: []types.RegisterModifier{
				// Family 6, model 0x3f, stepping 2 in the low 20 bits.
				{Register: types.EAX, Bitmap: fv(0x000fffff, 0x000306f2)},
				// Clear MOVBE, TSC-deadline, F16C, RDRAND.
				{Register: types.ECX, Bitmap: fv(0x61400000, 0x00000000)},
			},
		},
		{
			Leaf: leafStructExt, Subleaf: 0x0,
			Modifiers: []types.RegisterModifier{
				// Clear AVX-512 family, SGX, RTM/HLE, MPX.
				{Register: types.EBX, Bitmap: fv(0xdcd34810, 0x00000000)},
				// Clear AVX-512 VBMI and friends.
				{Register: types.ECX, Bitmap: fv(0x00005842, 0x00000000)},
			},
		},
		{
			Leaf: leafXsave, Subleaf: 0x0,
			Modifiers: []types.RegisterModifier{
				// Hide AVX-512 opmask/ZMM state components.
				{Register: types.EAX, Bitmap: fv(0x000000e0, 0x00000000)},
			},
		},
		{
			Leaf: leafExtFeatures, Subleaf: 0x0,
			Modifiers: []types.RegisterModifier{
				// Clear PREFETCHW.
				{Register: types.ECX, Bitmap: fv(0x00000100, 0x00000000)},
			},
		},
	}
}
