// Package bitmap converts wildcard bit-strings to and from
// filter/value pairs.
//
// A wildcard bit-string spells out a register modification one bit per
// character, most significant bit first: '0' and '1' pin the bit to that
// value, 'x' leaves it untouched. "010x" therefore decodes to filter 0b1110
// (three controlled positions) and value 0b0100.
//
// Decoding is width-agnostic: the text's length determines how many bits it
// describes, and the result always fits a 64-bit pair, so one decoder serves
// both 32-bit CPUID registers and 64-bit MSRs. Encoding is width-fixed:
// consumers recognize register width from the emitted string length, so the
// output is always exactly the context width plus the "0b" prefix.
package bitmap

import (
	"strconv"
	"strings"

	"github.com/joshuapare/cpukit/pkg/types"
)

// Width is the bit width of an encoded bitmap string.
type Width int

const (
	// Width32 is the CPUID register context (34-character strings).
	Width32 Width = 32
	// Width64 is the MSR context (66-character strings).
	Width64 Width = 64
)

// Decode parses a wildcard bit-string, with or without a leading "0b", into
// a filter/value pair. Every character after the optional prefix must be
// '0', '1', or 'x' (case-sensitive); anything else fails with a bitmap
// error carrying the prefix-stripped text.
func Decode(text string) (types.RegisterValueFilter, error) {
	text = strings.TrimPrefix(text, "0b")

	// The filter has a 1 wherever a bit is pinned ('0' or '1'); the value
	// keeps the pinned bits and zeroes the wildcards. Characters outside
	// {0,1,x} survive both rewrites and fail the base-2 parse, which keeps
	// the validity check in one place.
	filterText := strings.ReplaceAll(text, "0", "1")
	filterText = strings.ReplaceAll(filterText, "x", "0")
	valueText := strings.ReplaceAll(text, "x", "0")

	filter, err := strconv.ParseUint(filterText, 2, 64)
	if err != nil {
		return types.RegisterValueFilter{}, types.NewBitmapError(text, err)
	}
	value, err := strconv.ParseUint(valueText, 2, 64)
	if err != nil {
		return types.RegisterValueFilter{}, types.NewBitmapError(text, err)
	}

	return types.RegisterValueFilter{Filter: filter, Value: value}, nil
}

// Encode renders a filter/value pair as a "0b"-prefixed wildcard bit-string
// of exactly width characters after the prefix. Positions outside the filter
// emit 'x'. The pair must use only the low width bits.
func Encode(fv types.RegisterValueFilter, width Width) string {
	filterText := formatBits(fv.Filter, width)
	valueText := formatBits(fv.Value, width)

	var b strings.Builder
	b.Grow(int(width) + 2)
	b.WriteString("0b")
	for i := 0; i < int(width); i++ {
		if filterText[i] == '1' {
			b.WriteByte(valueText[i])
		} else {
			b.WriteByte('x')
		}
	}
	return b.String()
}

// formatBits renders v as zero-padded binary of exactly width characters.
func formatBits(v uint64, width Width) string {
	text := strconv.FormatUint(v, 2)
	if pad := int(width) - len(text); pad > 0 {
		text = strings.Repeat("0", pad) + text
	}
	return text
}
