package emitter

import (
	"fmt"
	"math"
	"strings"
)

// formatFloat renders f as the shortest decimal representation that,
// digit by digit, stops adding precision once another digit would no
// longer change the value — ckdl's _float_to_string
// (original_source/src/emitter.c), ported digit-accumulation loop and all.
func formatFloat(f float64, opts FloatFormat) string {
	negative := math.Signbit(f)
	f = math.Abs(f)

	exponent := int(math.Floor(math.Log10(f)))
	expFactor := 1.0
	if abs(exponent) < opts.MinExponent {
		exponent = 0
	} else {
		expFactor = math.Pow(10.0, float64(exponent))
	}

	integerPart := int64(math.Floor(f / expFactor))

	var buf strings.Builder
	if negative {
		buf.WriteByte('-')
	} else if opts.Plus {
		buf.WriteByte('+')
	}
	fmt.Fprintf(&buf, "%d", integerPart)

	fIntPart := float64(integerPart) * expFactor
	writtenPoint := false
	zeros, nines := 0, 0
	queuedDigit := -1
	var fractionalPartSoFar uint64
	pos := 0.1 * expFactor
	fSoFar := fIntPart

	for f+pos != f && fSoFar < f {
		remainder := f - fSoFar
		nextDigit := int(math.Floor(remainder / pos))
		fractionalPartSoFar = 10*fractionalPartSoFar + uint64(nextDigit)

		for fIntPart+float64(fractionalPartSoFar+1)*pos <= f {
			nextDigit++
			fractionalPartSoFar++
		}

		fSoFar = fIntPart + float64(fractionalPartSoFar)*pos

		switch {
		case nextDigit == 0:
			zeros++
		case nextDigit == 9:
			nines++
		case nextDigit >= 10:
			overflow := nextDigit - 9
			nextDigit -= overflow
			fractionalPartSoFar -= uint64(overflow)
		default:
			if queuedDigit >= 0 || zeros != 0 || nines != 0 {
				if !writtenPoint {
					buf.WriteByte('.')
					writtenPoint = true
				}
				if queuedDigit >= 0 {
					buf.WriteByte(byte('0' + queuedDigit))
				}
				for ; zeros != 0; zeros-- {
					buf.WriteByte('0')
				}
				for ; nines != 0; nines-- {
					buf.WriteByte('9')
				}
			}
			queuedDigit = nextDigit
		}

		pos /= 10.0
	}

	if queuedDigit != -1 {
		if !writtenPoint {
			buf.WriteByte('.')
			writtenPoint = true
		}
		if nines != 0 {
			queuedDigit++
		}
		buf.WriteByte(byte('0' + queuedDigit))
	}

	if !writtenPoint && opts.AlwaysWriteDecimalPoint {
		buf.WriteString(".0")
		writtenPoint = true
	}

	if exponent != 0 {
		buf.WriteByte(exponentLetter(opts.CapitalE))
		if exponent >= 0 && opts.ExponentPlus {
			buf.WriteByte('+')
		}
		fmt.Fprintf(&buf, "%d", exponent)
	} else if !writtenPoint && opts.AlwaysWriteDecimalPointOrExponent {
		buf.WriteString(".0")
	}

	return buf.String()
}

func exponentLetter(capital bool) byte {
	if capital {
		return 'E'
	}
	return 'e'
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
