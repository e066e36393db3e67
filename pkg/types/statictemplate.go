package types

import "fmt"

// StaticTemplate names a built-in template from the fixed catalog.
//
// StaticNone is a legacy sentinel kept for wire compatibility with
// configurations that predate the optional selector: it parses and
// round-trips like any other member, but it never resolves to a template.
type StaticTemplate int

const (
	// StaticC3 masks the guest CPU down to a C3-generation Intel feature set.
	StaticC3 StaticTemplate = iota
	// StaticT2 masks the guest CPU down to a T2-generation Intel feature set.
	StaticT2
	// StaticT2S extends T2 with MSR mitigations for safer snapshot moves.
	StaticT2S
	// StaticT2CL is the T2 variant for Cascade Lake or newer Intel hosts.
	StaticT2CL
	// StaticT2A is the T2 analogue for AMD hosts.
	StaticT2A
	// StaticNone is the legacy "no template" sentinel. Selecting it always
	// fails resolution; the absence of a selector is the supported way to
	// run without a template.
	StaticNone
)

var staticTemplateNames = [...]string{"C3", "T2", "T2S", "T2CL", "T2A", "None"}

// StaticTemplates returns every catalog member, including the StaticNone
// sentinel, in declaration order.
func StaticTemplates() []StaticTemplate {
	return []StaticTemplate{StaticC3, StaticT2, StaticT2S, StaticT2CL, StaticT2A, StaticNone}
}

// String returns the catalog name of the template.
func (s StaticTemplate) String() string {
	if s < StaticC3 || s > StaticNone {
		return fmt.Sprintf("UNKNOWN_TEMPLATE_%d", int(s))
	}
	return staticTemplateNames[s]
}

// ParseStaticTemplate maps a catalog name to its StaticTemplate. Matching is
// case-sensitive; unknown names are a schema error listing the catalog.
func ParseStaticTemplate(text string) (StaticTemplate, error) {
	for i, name := range staticTemplateNames {
		if text == name {
			return StaticTemplate(i), nil
		}
	}
	return 0, NewSchemaError(
		fmt.Sprintf("unknown static CPU template %q, must be one of [C3, T2, T2S, T2CL, T2A, None]", text), nil)
}
