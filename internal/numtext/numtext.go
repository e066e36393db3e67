// Package numtext converts unsigned 32-bit integers to and from the textual
// forms used in template documents.
//
// Input is multi-radix: plain decimal, "0b"-prefixed binary, or
// "0x"-prefixed hexadecimal. Output is always canonical "0x"-prefixed
// lowercase hexadecimal. The asymmetry is deliberate: operators may write
// whichever radix reads best, but emitted documents stay uniform.
package numtext

import (
	"strconv"

	"github.com/joshuapare/cpukit/pkg/types"
)

// ParseU32 parses text as an unsigned 32-bit integer.
//
// A "0b" or "0x" prefix selects base 2 or 16 for the remainder of the text.
// The prefix is only recognized when the text is longer than two characters;
// shorter text is parsed whole as decimal, so "0b" alone is a malformed
// decimal number rather than an empty binary one.
func ParseU32(text string) (uint32, error) {
	var value uint64
	var err error

	if len(text) > 2 {
		switch text[:2] {
		case "0b":
			value, err = strconv.ParseUint(text[2:], 2, 32)
		case "0x":
			value, err = strconv.ParseUint(text[2:], 16, 32)
		default:
			value, err = strconv.ParseUint(text, 10, 32)
		}
	} else {
		value, err = strconv.ParseUint(text, 10, 32)
	}
	if err != nil {
		return 0, types.NewNumberError(text, err)
	}
	return uint32(value), nil
}

// FormatU32 renders a value in the canonical document form: "0x"-prefixed
// lowercase hex without zero padding.
func FormatU32(value uint32) string {
	return "0x" + strconv.FormatUint(uint64(value), 16)
}
