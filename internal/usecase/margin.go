package usecase

import (
	"fmt"

	"FXPulse/internal/domain/models"
	"FXPulse/pkg/util"
)

// SimulateMargin computes the landed cost of an imported unit and the
// margin against its resale price, both rounded to two decimals.
//
//	landed = round2(unitCost * rate * markup)
//	margin = round2((sellPrice - landed) / sellPrice * 100)
//
// A non-positive sell price fails with ErrInvalidInput instead of
// letting a division by zero propagate.
func SimulateMargin(unitCost, rate, sellPrice, markup float64) (landedCost, marginPct float64, err error) {
	if sellPrice <= 0 {
		return 0, 0, fmt.Errorf("%w: sell price must be positive, got %v", models.ErrInvalidInput, sellPrice)
	}

	landedCost = util.Round2(unitCost * rate * markup)
	marginPct = util.Round2((sellPrice - landedCost) / sellPrice * 100)
	return landedCost, marginPct, nil
}
