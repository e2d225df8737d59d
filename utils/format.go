package utils

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PrettySize renders a byte count with a binary unit, e.g. "12.50 KiB".
func PrettySize(n int) string {
	f := float64(n)
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	for _, unit := range []string{"KiB", "MiB", "GiB"} {
		f /= 1024.0
		if f < 1024.0 {
			return fmt.Sprintf("%.2f %s", f, unit)
		}
	}
	return fmt.Sprintf("%.2f TiB", f/1024.0)
}

// AbbreviateDecimal keeps three significant fraction digits and folds long
// runs of leading zeros into a subscript count, so 0.0000123 reads 0.0₄123.
func AbbreviateDecimal(v decimal.Decimal) string {
	s := v.StringFixedBank(SolDecimals)
	ss := strings.Split(s, ".")
	if len(ss) == 1 {
		return s
	}

	fraction := ss[1]
	cnt := len(fraction) - len(strings.TrimLeft(fraction, "0"))

	const zero rune = '₀'
	switch {
	case cnt >= SolDecimals:
		fraction = fraction[:3]
	case cnt > 2:
		fraction = fmt.Sprintf("0%s%s", string(zero+rune(cnt)), fraction[cnt:lo.Min([]int{SolDecimals, cnt + 3})])
	default:
		fraction = fraction[:cnt+3]
	}
	return fmt.Sprintf("%s.%s", ss[0], fraction)
}

func FormatLamports(lamports uint64) string {
	return fmt.Sprintf("%s SOL (%d lamports)", AbbreviateDecimal(LamportsToSol(lamports)), lamports)
}
