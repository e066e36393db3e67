// Package hostcpu exposes the host CPU identification facts that gate
// built-in template resolution: the vendor ID string and the
// family/model/stepping triple.
//
// Detection is abstracted behind the VendorSource and ModelSource
// interfaces so resolution logic can be exercised against any vendor and
// any microarchitecture generation without real hardware. The production
// implementation, Host, reads the kernel's procfs view on Linux.
package hostcpu

// Vendor ID strings as reported by CPUID leaf 0 and mirrored by the kernel
// in /proc/cpuinfo.
const (
	VendorIntel = "GenuineIntel"
	VendorAMD   = "AuthenticAMD"
)

// VendorSource reports the host CPU vendor ID string.
type VendorSource interface {
	VendorID() (string, error)
}

// ModelSource reports the host CPU model identification.
type ModelSource interface {
	Model() (Model, error)
}

// Model is the family/model/stepping triple identifying a CPU generation.
// Values follow the extended CPUID convention the kernel reports: family
// and model already include the extended fields folded in.
type Model struct {
	Family   uint32
	Model    uint32
	Stepping uint32
}

// Cascade Lake shares CPUID model 0x55 with Skylake-SP; stepping 5 is the
// first Cascade Lake stepping.
const (
	intelFamilyCore        = 6
	skylakeServerModel     = 0x55
	cascadeLakeMinStepping = 5
)

// IsAtLeastCascadeLake reports whether the CPU is Cascade Lake or a newer
// Intel generation.
func (m Model) IsAtLeastCascadeLake() bool {
	if m.Family != intelFamilyCore {
		return m.Family > intelFamilyCore
	}
	if m.Model != skylakeServerModel {
		return m.Model > skylakeServerModel
	}
	return m.Stepping >= cascadeLakeMinStepping
}

// Host reads CPU identification from the kernel. It implements both
// VendorSource and ModelSource. Only Linux on x86_64 is supported; on
// other platforms every query fails.
type Host struct {
	// ProcRoot is the procfs mount point. Empty means "/proc"; tests point
	// it at a fixture directory.
	ProcRoot string
}

// NewHost returns a Host reading from the default /proc mount.
func NewHost() *Host {
	return &Host{}
}
