// Package types defines the core value types and error taxonomy shared by
// all cpukit packages.
//
// # Overview
//
// A CPU template describes a set of register-bit modifications that
// normalize guest-visible CPU identification across heterogeneous hosts.
// Templates address two register spaces:
//
//   - CPUID leaves: 32-bit registers (eax, ebx, ecx, edx) returned by an
//     identification query addressed by leaf/subleaf.
//   - MSRs: 64-bit model-specific registers addressed by a 32-bit index.
//
// The central primitive is RegisterValueFilter, a filter/value bit pair.
// The filter selects which bits of a register the template controls; the
// value holds the bits to assert at those positions. Everything else in a
// register is left untouched.
//
// All types in this package are immutable value types: they are built once
// (by the template codec or by a caller assembling one in memory) and never
// mutated afterward, so they may be shared across goroutines freely.
package types
