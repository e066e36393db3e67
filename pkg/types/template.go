package types

import "fmt"

// CpuidRegister identifies one of the four 32-bit registers returned by a
// CPUID leaf query.
type CpuidRegister int

const (
	EAX CpuidRegister = iota
	EBX
	ECX
	EDX
)

// cpuidRegisterNames is the canonical (and only accepted) text form of each
// register, in register order.
var cpuidRegisterNames = [...]string{"eax", "ebx", "ecx", "edx"}

// String returns the lowercase text form used in template documents.
func (r CpuidRegister) String() string {
	if r < EAX || r > EDX {
		return fmt.Sprintf("UNKNOWN_REGISTER_%d", int(r))
	}
	return cpuidRegisterNames[r]
}

// ParseCpuidRegister maps document text to a CpuidRegister. Matching is
// case-sensitive; anything but the four lowercase names is a schema error
// naming the allowed set.
func ParseCpuidRegister(text string) (CpuidRegister, error) {
	for i, name := range cpuidRegisterNames {
		if text == name {
			return CpuidRegister(i), nil
		}
	}
	return 0, NewSchemaError(
		fmt.Sprintf("invalid CPUID register %q, must be one of [eax, ebx, ecx, edx]", text), nil)
}

// RegisterValueFilter is a bit-mapped modification of a single register.
// Filter selects the bit positions the template controls; Value holds the
// bits to assert there. Bits outside Filter are don't-care and are zero in
// Value. That containment invariant is established by the bitmap codec on
// construction and is not re-checked here.
type RegisterValueFilter struct {
	// Filter is the mask of controlled bit positions.
	Filter uint64
	// Value holds the bits applied at the filtered positions.
	Value uint64
}

// Apply overwrites the filtered bits of original with the filter's value
// bits, leaving all other bits untouched.
func (f RegisterValueFilter) Apply(original uint64) uint64 {
	return (original &^ f.Filter) | f.Value
}

// KvmCpuidFlags carries the feature-query flags attached to a CPUID
// leaf/subleaf entry. The value is opaque to cpukit and passes through the
// codec unchanged.
type KvmCpuidFlags uint32

// RegisterModifier pins bits of one 32-bit CPUID register.
type RegisterModifier struct {
	// Register is the CPUID output register to modify.
	Register CpuidRegister
	// Bitmap selects and asserts bits of the register's 32-bit value.
	Bitmap RegisterValueFilter
}

// LeafModifier describes all register changes for one CPUID leaf/subleaf.
// Modifier order follows document order; it carries no meaning beyond that.
type LeafModifier struct {
	// Leaf is the CPUID leaf (function) number.
	Leaf uint32
	// Subleaf is the CPUID subleaf (subfunction) number.
	Subleaf uint32
	// Flags are the KVM feature-query flags for this leaf/subleaf.
	Flags KvmCpuidFlags
	// Modifiers lists the per-register changes under this subleaf.
	Modifiers []RegisterModifier
}

// MsrModifier pins bits of one 64-bit model-specific register.
type MsrModifier struct {
	// Addr is the 32-bit MSR index.
	Addr uint32
	// Bitmap selects and asserts bits of the MSR's 64-bit value.
	Bitmap RegisterValueFilter
}

// CustomTemplate is a complete set of CPUID and MSR modifications. The zero
// value is a valid, empty template.
type CustomTemplate struct {
	// CpuidModifiers lists CPUID leaf/subleaf changes in document order.
	CpuidModifiers []LeafModifier
	// MsrModifiers lists MSR changes in document order.
	MsrModifiers []MsrModifier
}
