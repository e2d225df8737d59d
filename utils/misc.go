package utils

import (
	"github.com/shopspring/decimal"
)

const SolDecimals = 9

func LamportsToSol(lamports uint64) decimal.Decimal {
	return decimal.NewFromUint64(lamports).Shift(-SolDecimals)
}

// SolToLamports truncates anything below one lamport.
func SolToLamports(sol decimal.Decimal) uint64 {
	if sol.IsNegative() {
		return 0
	}
	return sol.Shift(SolDecimals).BigInt().Uint64()
}
