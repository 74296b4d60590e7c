package utils

import "errors"

// Common application errors used across services. Calculation-input errors
// live in internal/pricing next to the calculator contract.
var (
	ErrNoProductsFound         = errors.New("NO_PRODUCTS_FOUND")
	ErrProfileNotFound         = errors.New("PROFILE_NOT_FOUND")
	ErrProfileNameExists       = errors.New("PROFILE_NAME_EXISTS")
	ErrInvalidProductBasePrice = errors.New("INVALID_PRODUCT_BASE_PRICE")
	ErrPriceCalculationFailed  = errors.New("PRICE_CALCULATION_FAILED")
	ErrInvalidAdjustmentType   = errors.New("INVALID_ADJUSTMENT_TYPE")
	ErrInvalidIncrementType    = errors.New("INVALID_INCREMENT_TYPE")
	ErrInvalidCredentials      = errors.New("INVALID_CREDENTIALS")
	ErrAccountInactive         = errors.New("ACCOUNT_INACTIVE")
	ErrInvalidToken            = errors.New("INVALID_TOKEN")
)
