package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller does not own the target resource.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInsufficientFunds indicates that a buy or withdrawal would drive the
// account's buying power negative.
var ErrInsufficientFunds = errors.New("insufficient buying power")

// ErrInsufficientPosition indicates that a sell exceeds the currently held quantity.
var ErrInsufficientPosition = errors.New("insufficient position")

// ErrTransactionProcessing is the uniform error the transaction processor
// re-signals when a domain validation fails mid-processing. The original
// message is carried in the wrapped text.
var ErrTransactionProcessing = errors.New("cannot process transaction")

// ErrNoTargetAllocation indicates that no security on the account has a
// positive target allocation, so no plan can be computed.
var ErrNoTargetAllocation = errors.New("at least one security must have a target allocation greater than zero")

// ErrAllocationStrategyRequired indicates that target allocations sum below 1
// and the caller did not say how to treat the shortfall.
var ErrAllocationStrategyRequired = errors.New("allocation strategy required when target allocations sum below 1")

// ErrPriceUnavailable indicates that the price feed could not resolve one or
// more symbols.
var ErrPriceUnavailable = errors.New("price unavailable")
