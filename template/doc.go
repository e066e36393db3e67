// Package template implements the CPU template document codec and the
// selector resolution logic.
//
// # Document format
//
// A template document is a JSON tree:
//
//	{
//	  "cpuid_modifiers": [
//	    {
//	      "leaf": "0x1",
//	      "subleaf": "0x0",
//	      "flags": 0,
//	      "modifiers": [
//	        {"register": "eax", "bitmap": "0bxxxxxxxxxxxx00110000011011100100"}
//	      ]
//	    }
//	  ],
//	  "msr_modifiers": [
//	    {"addr": "0x10a", "bitmap": "0bxx...x0"}
//	  ]
//	}
//
// Numbers (leaf, subleaf, addr) accept decimal, "0b" binary, or "0x" hex
// text on input and are always emitted as "0x" hex. Bitmaps are wildcard
// bit-strings ('0'/'1' pin a bit, 'x' leaves it alone), emitted at the
// context's fixed width: 32 bits for CPUID registers, 64 for MSRs.
//
// Decoding is strict: an unknown field at any nesting level fails with a
// schema error. This is a compatibility guard — a typo in an
// operator-authored template must never be silently ignored.
//
// # Resolution
//
// Resolve turns a Selector (nothing selected, an in-memory custom template,
// or a built-in catalog name) into a concrete template, gating built-in
// templates on the host's CPU vendor and, for T2CL, its microarchitecture
// generation. Host introspection is injected via the hostcpu interfaces so
// resolution is testable against any host shape.
package template
