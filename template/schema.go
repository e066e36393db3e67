package template

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/cpukit/internal/bitmap"
	"github.com/joshuapare/cpukit/internal/numtext"
	"github.com/joshuapare/cpukit/pkg/types"
)

// Wire representation of a template document. The scalar fields carry
// custom codecs (multi-radix numbers, register names, wildcard bitmaps);
// the struct shells stay codec-free so the decoder's unknown-field
// rejection applies at every nesting level.
type document struct {
	CpuidModifiers []leafModifier `json:"cpuid_modifiers"`
	MsrModifiers   []msrModifier  `json:"msr_modifiers"`
}

type leafModifier struct {
	Leaf      hexU32             `json:"leaf"`
	Subleaf   hexU32             `json:"subleaf"`
	Flags     uint32             `json:"flags"`
	Modifiers []registerModifier `json:"modifiers"`
}

type registerModifier struct {
	Register registerName `json:"register"`
	Bitmap   bitmap32     `json:"bitmap"`
}

type msrModifier struct {
	Addr   hexU32   `json:"addr"`
	Bitmap bitmap64 `json:"bitmap"`
}

// hexU32 is a uint32 stored as text: multi-radix in, canonical hex out.
type hexU32 uint32

func (h *hexU32) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return types.NewSchemaError("number fields must be string-encoded", err)
	}
	value, err := numtext.ParseU32(text)
	if err != nil {
		return err
	}
	*h = hexU32(value)
	return nil
}

func (h hexU32) MarshalJSON() ([]byte, error) {
	return json.Marshal(numtext.FormatU32(uint32(h)))
}

// registerName is a CpuidRegister stored as its lowercase text form.
type registerName types.CpuidRegister

func (r *registerName) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return types.NewSchemaError("register field must be a string", err)
	}
	register, err := types.ParseCpuidRegister(text)
	if err != nil {
		return err
	}
	*r = registerName(register)
	return nil
}

func (r registerName) MarshalJSON() ([]byte, error) {
	return json.Marshal(types.CpuidRegister(r).String())
}

// bitmap32 and bitmap64 share the width-agnostic decoder and differ only in
// the fixed width they encode at.
type (
	bitmap32 types.RegisterValueFilter
	bitmap64 types.RegisterValueFilter
)

func (b *bitmap32) UnmarshalJSON(data []byte) error {
	fv, err := unmarshalBitmap(data)
	if err != nil {
		return err
	}
	*b = bitmap32(fv)
	return nil
}

func (b bitmap32) MarshalJSON() ([]byte, error) {
	return json.Marshal(bitmap.Encode(types.RegisterValueFilter(b), bitmap.Width32))
}

func (b *bitmap64) UnmarshalJSON(data []byte) error {
	fv, err := unmarshalBitmap(data)
	if err != nil {
		return err
	}
	*b = bitmap64(fv)
	return nil
}

func (b bitmap64) MarshalJSON() ([]byte, error) {
	return json.Marshal(bitmap.Encode(types.RegisterValueFilter(b), bitmap.Width64))
}

func unmarshalBitmap(data []byte) (types.RegisterValueFilter, error) {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return types.RegisterValueFilter{}, types.NewSchemaError("bitmap field must be a string", err)
	}
	return bitmap.Decode(text)
}

// fieldSet names the recognized fields of one object level. A non-nil
// value is the field set for objects nested under that field (array
// elements included); nil marks a scalar field.
type fieldSet map[string]fieldSet

var (
	registerModifierFields = fieldSet{"register": nil, "bitmap": nil}
	leafModifierFields     = fieldSet{"leaf": nil, "subleaf": nil, "flags": nil, "modifiers": registerModifierFields}
	msrModifierFields      = fieldSet{"addr": nil, "bitmap": nil}
	documentFields         = fieldSet{"cpuid_modifiers": leafModifierFields, "msr_modifiers": msrModifierFields}
)

// checkKeys consumes one JSON value from dec and enforces exact-case,
// single-use field names on every object it contains. encoding/json matches
// struct fields case-insensitively and keeps the last of duplicate keys, so
// the strict decode alone cannot catch either. Shape mismatches (an object
// where a scalar belongs, and so on) are left for the main decoder.
func checkKeys(dec *json.Decoder, fields fieldSet) error {
	tok, err := dec.Token()
	if err != nil {
		return types.NewSchemaError("invalid CPU template document", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	switch delim {
	case '{':
		seen := make(map[string]bool)
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return types.NewSchemaError("invalid CPU template document", err)
			}
			key, _ := keyTok.(string)
			var child fieldSet
			if fields != nil {
				var known bool
				child, known = fields[key]
				if !known {
					return types.NewSchemaError(fmt.Sprintf("unknown field %q", key), nil)
				}
				if seen[key] {
					return types.NewSchemaError(fmt.Sprintf("duplicate field %q", key), nil)
				}
				seen[key] = true
			}
			if err := checkKeys(dec, child); err != nil {
				return err
			}
		}
	case '[':
		for dec.More() {
			if err := checkKeys(dec, fields); err != nil {
				return err
			}
		}
	}
	if _, err := dec.Token(); err != nil {
		return types.NewSchemaError("invalid CPU template document", err)
	}
	return nil
}

// Unmarshal decodes a JSON template document into a CustomTemplate.
// Unknown fields at any level, malformed numbers, bad register names, and
// invalid bitmaps all fail with the corresponding typed error.
func Unmarshal(data []byte) (*types.CustomTemplate, error) {
	keys := json.NewDecoder(bytes.NewReader(data))
	if err := checkKeys(keys, documentFields); err != nil {
		return nil, err
	}
	if _, err := keys.Token(); !errors.Is(err, io.EOF) {
		return nil, types.NewSchemaError("trailing data after template document", nil)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var doc document
	if err := decoder.Decode(&doc); err != nil {
		// Scalar codec failures are already typed; everything else (unknown
		// fields, type mismatches, bad JSON) is a document shape problem.
		var typed *types.Error
		if errors.As(err, &typed) {
			return nil, typed
		}
		return nil, types.NewSchemaError("invalid CPU template document", err)
	}

	return doc.toTemplate(), nil
}

// Marshal encodes a template as an indented JSON document with canonical
// scalar forms (hex numbers, fixed-width bitmaps).
func Marshal(t *types.CustomTemplate) ([]byte, error) {
	return json.MarshalIndent(fromTemplate(t), "", "  ")
}

// MSRIndexList returns the address of every MSR modifier in document order,
// for collaborators that must know which MSRs to save and restore.
func MSRIndexList(t *types.CustomTemplate) []uint32 {
	list := make([]uint32, 0, len(t.MsrModifiers))
	for _, modifier := range t.MsrModifiers {
		list = append(list, modifier.Addr)
	}
	return list
}

func (d *document) toTemplate() *types.CustomTemplate {
	t := &types.CustomTemplate{
		CpuidModifiers: make([]types.LeafModifier, 0, len(d.CpuidModifiers)),
		MsrModifiers:   make([]types.MsrModifier, 0, len(d.MsrModifiers)),
	}
	for _, leaf := range d.CpuidModifiers {
		modifiers := make([]types.RegisterModifier, 0, len(leaf.Modifiers))
		for _, m := range leaf.Modifiers {
			modifiers = append(modifiers, types.RegisterModifier{
				Register: types.CpuidRegister(m.Register),
				Bitmap:   types.RegisterValueFilter(m.Bitmap),
			})
		}
		t.CpuidModifiers = append(t.CpuidModifiers, types.LeafModifier{
			Leaf:      uint32(leaf.Leaf),
			Subleaf:   uint32(leaf.Subleaf),
			Flags:     types.KvmCpuidFlags(leaf.Flags),
			Modifiers: modifiers,
		})
	}
	for _, msr := range d.MsrModifiers {
		t.MsrModifiers = append(t.MsrModifiers, types.MsrModifier{
			Addr:   uint32(msr.Addr),
			Bitmap: types.RegisterValueFilter(msr.Bitmap),
		})
	}
	return t
}

func fromTemplate(t *types.CustomTemplate) *document {
	doc := &document{
		CpuidModifiers: make([]leafModifier, 0, len(t.CpuidModifiers)),
		MsrModifiers:   make([]msrModifier, 0, len(t.MsrModifiers)),
	}
	for _, leaf := range t.CpuidModifiers {
		modifiers := make([]registerModifier, 0, len(leaf.Modifiers))
		for _, m := range leaf.Modifiers {
			modifiers = append(modifiers, registerModifier{
				Register: registerName(m.Register),
				Bitmap:   bitmap32(m.Bitmap),
			})
		}
		doc.CpuidModifiers = append(doc.CpuidModifiers, leafModifier{
			Leaf:      hexU32(leaf.Leaf),
			Subleaf:   hexU32(leaf.Subleaf),
			Flags:     uint32(leaf.Flags),
			Modifiers: modifiers,
		})
	}
	for _, msr := range t.MsrModifiers {
		doc.MsrModifiers = append(doc.MsrModifiers, msrModifier{
			Addr:   hexU32(msr.Addr),
			Bitmap: bitmap64(msr.Bitmap),
		})
	}
	return doc
}
