package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ATSOTECK/kdlgo/internal/bigint"
	"github.com/ATSOTECK/kdlgo/internal/model"
)

// parseNumber interprets a word token's text as a KDL number literal (spec
// §4.6), grounded on ckdl's number-parsing path in parser.c.
func parseNumber(text string) (model.Number, error) {
	negative := false
	rest := text
	switch {
	case strings.HasPrefix(rest, "+"):
		rest = rest[1:]
	case strings.HasPrefix(rest, "-"):
		negative = true
		rest = rest[1:]
	}

	switch {
	case strings.HasPrefix(rest, "0x") || strings.HasPrefix(rest, "0X"):
		return parseRadixInt(rest[2:], 16, negative)
	case strings.HasPrefix(rest, "0o") || strings.HasPrefix(rest, "0O"):
		return parseRadixInt(rest[2:], 8, negative)
	case strings.HasPrefix(rest, "0b") || strings.HasPrefix(rest, "0B"):
		return parseRadixInt(rest[2:], 2, negative)
	default:
		if strings.ContainsAny(rest, ".eE") {
			return parseFloatLiteral(text)
		}
		return parseRadixInt(rest, 10, negative)
	}
}

func digitValue(c byte, radix int) (int, bool) {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return 0, false
	}
	if v >= radix {
		return 0, false
	}
	return v, true
}

func parseRadixInt(digits string, radix int, negative bool) (model.Number, error) {
	n := bigint.New(0)
	sawDigit := false
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c == '_' {
			if i == 0 {
				return model.Number{}, errInvalidNumber("leading '_' separator")
			}
			continue
		}
		v, ok := digitValue(c, radix)
		if !ok {
			return model.Number{}, errInvalidNumber("invalid digit in number literal")
		}
		n.MulUint(uint32(radix))
		n.AddUint(uint32(v))
		sawDigit = true
	}
	if !sawDigit {
		return model.Number{}, errInvalidNumber("number literal has no digits")
	}

	if v, ok := n.Int64(); ok {
		if negative {
			v = -v
		}
		return model.Int(v), nil
	}
	return model.EncodedNumber(n.StringSigned(negative)), nil
}

func parseFloatLiteral(text string) (model.Number, error) {
	negative := strings.HasPrefix(text, "-")
	mantissaAndRest := text
	switch {
	case strings.HasPrefix(mantissaAndRest, "+"), strings.HasPrefix(mantissaAndRest, "-"):
		mantissaAndRest = mantissaAndRest[1:]
	}

	mantissa := mantissaAndRest
	explicitExp := 0
	if idx := strings.IndexAny(mantissaAndRest, "eE"); idx >= 0 {
		mantissa = mantissaAndRest[:idx]
		expPart := mantissaAndRest[idx+1:]
		expPart = strings.ReplaceAll(expPart, "_", "")
		e, err := strconv.Atoi(expPart)
		if err != nil {
			return model.Number{}, errInvalidNumber("invalid exponent in float literal")
		}
		explicitExp = e
	}

	digitsBefore, digitsAfter := 0, 0
	if dotIdx := strings.IndexByte(mantissa, '.'); dotIdx >= 0 {
		digitsBefore = countDigits(mantissa[:dotIdx])
		digitsAfter = countDigits(mantissa[dotIdx+1:])
	} else {
		digitsBefore = countDigits(mantissa)
	}

	canon := strings.ReplaceAll(text, "_", "")
	canon = strings.TrimPrefix(canon, "+")

	absExp := explicitExp
	if absExp < 0 {
		absExp = -absExp
	}
	if digitsBefore+digitsAfter <= 15 && absExp < 285 {
		if f, err := strconv.ParseFloat(canon, 64); err == nil {
			return model.Float(f), nil
		}
	}

	_ = negative
	return model.EncodedNumber(canon), nil
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			n++
		}
	}
	return n
}

func errInvalidNumber(msg string) error {
	return errors.New(msg)
}
