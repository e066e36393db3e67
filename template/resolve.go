package template

import (
	"fmt"

	"github.com/joshuapare/cpukit/hostcpu"
	"github.com/joshuapare/cpukit/pkg/types"
	"github.com/joshuapare/cpukit/template/static"
)

// Selector is the optional CPU template choice attached to a machine
// configuration: nothing, an in-memory custom template, or the name of a
// built-in template. The zero value selects nothing.
type Selector struct {
	kind     selectorKind
	custom   *types.CustomTemplate
	staticID types.StaticTemplate
}

type selectorKind int

const (
	selectorNone selectorKind = iota
	selectorCustom
	selectorStatic
)

// NoSelector selects no template.
func NoSelector() Selector {
	return Selector{}
}

// CustomSelector selects a caller-supplied template. Resolve returns the
// exact pointer back; it does not copy or re-validate (validation already
// happened when the template was decoded or built).
func CustomSelector(t *types.CustomTemplate) Selector {
	return Selector{kind: selectorCustom, custom: t}
}

// StaticSelector selects a built-in template by catalog name.
func StaticSelector(id types.StaticTemplate) Selector {
	return Selector{kind: selectorStatic, staticID: id}
}

// Resolved is the outcome of template resolution. When Owned is false the
// Template pointer is the caller's own custom template handed back;
// either way the caller must treat it as read-only.
type Resolved struct {
	Template *types.CustomTemplate
	Owned    bool
}

// Resolve turns a selector into a concrete template, gating built-in
// templates on host CPU facts. It is a pure function of its inputs: no
// caching, no retries, and identical results on identical hosts.
func Resolve(sel Selector, vendors hostcpu.VendorSource, models hostcpu.ModelSource) (Resolved, error) {
	switch sel.kind {
	case selectorCustom:
		return Resolved{Template: sel.custom}, nil
	case selectorStatic:
		return resolveStatic(sel.staticID, vendors, models)
	default:
		return Resolved{Template: &types.CustomTemplate{}, Owned: true}, nil
	}
}

// RequiredVendor returns the vendor ID a static template is gated on, or ""
// for the StaticNone sentinel, which no vendor can satisfy.
func RequiredVendor(id types.StaticTemplate) string {
	switch id {
	case types.StaticT2A:
		return hostcpu.VendorAMD
	case types.StaticNone:
		return ""
	default:
		return hostcpu.VendorIntel
	}
}

func resolveStatic(id types.StaticTemplate, vendors hostcpu.VendorSource, models hostcpu.ModelSource) (Resolved, error) {
	vendor, err := vendors.VendorID()
	if err != nil {
		return Resolved{}, types.NewVendorQueryError(err)
	}

	switch id {
	case types.StaticC3:
		if vendor != hostcpu.VendorIntel {
			return Resolved{}, types.ErrVendorMismatch
		}
		return owned(static.C3()), nil

	case types.StaticT2:
		if vendor != hostcpu.VendorIntel {
			return Resolved{}, types.ErrVendorMismatch
		}
		return owned(static.T2()), nil

	case types.StaticT2S:
		if vendor != hostcpu.VendorIntel {
			return Resolved{}, types.ErrVendorMismatch
		}
		return owned(static.T2S()), nil

	case types.StaticT2CL:
		if vendor != hostcpu.VendorIntel {
			return Resolved{}, types.ErrVendorMismatch
		}
		model, err := models.Model()
		if err != nil {
			return Resolved{}, types.NewVendorQueryError(err)
		}
		if !model.IsAtLeastCascadeLake() {
			return Resolved{}, types.ErrInvalidCpuModel
		}
		return owned(static.T2CL()), nil

	case types.StaticT2A:
		if vendor != hostcpu.VendorAMD {
			return Resolved{}, types.ErrVendorMismatch
		}
		return owned(static.T2A()), nil

	case types.StaticNone:
		// Legacy sentinel: a syntactically valid selector that can never
		// resolve. Kept so configurations that still say "None" fail loudly
		// instead of silently meaning "no template".
		return Resolved{}, types.NewInvalidStaticTemplateError(id)

	default:
		return Resolved{}, types.NewSchemaError(
			fmt.Sprintf("unknown static CPU template %v", id), nil)
	}
}

func owned(t *types.CustomTemplate) Resolved {
	return Resolved{Template: t, Owned: true}
}
