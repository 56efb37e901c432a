package services

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"familywallet/internal/core"
)

// SimulateMarket perturbs each holding's current unit value by a uniform
// random factor in [-4.5%, +5.5%), a slight upward skew, and floors the
// result at zero. The input slice is left untouched.
func SimulateMarket(invs []core.Investment, r *rand.Rand) []core.Investment {
	out := make([]core.Investment, len(invs))
	for i, inv := range invs {
		change := (r.Float64() - 0.45) * 0.1
		next := inv.CurrentValue.Mul(decimal.NewFromFloat(1 + change)).Round(4)
		if next.IsNegative() {
			next = decimal.Zero
		}
		inv.CurrentValue = next
		out[i] = inv
	}
	return out
}
