// Package pricing implements the price adjustment calculation used by
// pricing profiles. It is pure: no I/O, no state.
//
// Formulas:
//
//	Fixed + Increase:   [Based On Price] + [Adjustment] = [New Price]
//	Fixed + Decrease:   [Based On Price] - [Adjustment] = [New Price]
//	Dynamic + Increase: [Based On Price] + ([Adjustment]% * [Based On Price]) = [New Price]
//	Dynamic + Decrease: [Based On Price] - ([Adjustment]% * [Based On Price]) = [New Price]
package pricing

import (
	"errors"
	"math"
)

// AdjustmentType selects between a flat amount and a percentage of base price.
type AdjustmentType string

// IncrementType is the direction of the adjustment.
type IncrementType string

const (
	AdjustmentFixed   AdjustmentType = "fixed"
	AdjustmentDynamic AdjustmentType = "dynamic"

	IncrementIncrease IncrementType = "increase"
	IncrementDecrease IncrementType = "decrease"
)

// Validation errors returned by Calculate. Checked in this order; the first
// failing rule wins.
var (
	ErrInvalidBasePrice       = errors.New("INVALID_BASE_PRICE")
	ErrInvalidAdjustmentValue = errors.New("INVALID_ADJUSTMENT_VALUE")
	ErrPercentageOutOfRange   = errors.New("PERCENTAGE_OUT_OF_RANGE")
	ErrDecreaseExceedsBase    = errors.New("DECREASE_EXCEEDS_BASE")
)

// Request holds the inputs for one price calculation.
type Request struct {
	BasePrice       float64
	AdjustmentType  AdjustmentType
	AdjustmentValue float64
	IncrementType   IncrementType
}

// Result is one entry of a batch calculation. Err is nil when the
// adjustment was applied; otherwise NewPrice falls back to BasePrice and
// Adjustment is zero.
type Result struct {
	Request
	NewPrice   float64
	Adjustment float64
	Err        error
}

// Calculate returns the new price for the given base price and adjustment
// parameters. It is strict: any input that violates a validation rule fails
// with the matching error, nothing is clamped away. The result is rounded
// half-up to cents and never negative.
func Calculate(req Request) (float64, error) {
	if err := validate(req); err != nil {
		return 0, err
	}

	amount := req.AdjustmentValue
	if req.AdjustmentType == AdjustmentDynamic {
		amount = req.AdjustmentValue / 100 * req.BasePrice
	}

	newPrice := req.BasePrice + amount
	if req.IncrementType == IncrementDecrease {
		newPrice = req.BasePrice - amount
	}

	return clampPrice(roundPrice(newPrice)), nil
}

// CalculateBatch computes one result per request, preserving input order.
// Unlike Calculate it is best-effort: a request that fails validation does
// not abort the batch; its result carries NewPrice == BasePrice, a zero
// Adjustment, and the original error for the caller's observability. Callers
// that must never silently skip an item (profile creation and recomputation)
// use Calculate directly.
func CalculateBatch(reqs []Request) []Result {
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		newPrice, err := Calculate(req)
		if err != nil {
			results = append(results, Result{
				Request:  req,
				NewPrice: req.BasePrice,
				Err:      err,
			})
			continue
		}
		results = append(results, Result{
			Request:    req,
			NewPrice:   newPrice,
			Adjustment: newPrice - req.BasePrice,
		})
	}
	return results
}

func validate(req Request) error {
	if !isFinite(req.BasePrice) || req.BasePrice < 0 {
		return ErrInvalidBasePrice
	}
	if !isFinite(req.AdjustmentValue) || req.AdjustmentValue <= 0 {
		return ErrInvalidAdjustmentValue
	}
	if req.AdjustmentType == AdjustmentDynamic && req.AdjustmentValue > 100 {
		return ErrPercentageOutOfRange
	}
	if req.IncrementType == IncrementDecrease &&
		req.AdjustmentType == AdjustmentFixed &&
		req.AdjustmentValue > req.BasePrice {
		return ErrDecreaseExceedsBase
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundPrice rounds to 2 decimal places, half away from zero on the cent
// boundary.
func roundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}

// clampPrice floors the price at zero. Unreachable given validation, kept as
// a safety net.
func clampPrice(price float64) float64 {
	if price < 0 {
		return 0
	}
	return price
}
