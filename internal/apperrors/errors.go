package apperrors

import "errors"

// Lookup errors represent expected "no data" conditions. They are never fatal:
// per-asset operations that fail with one of these are dropped from aggregate
// views and the rest of the batch proceeds.
var (
	// ErrPriceNotFound indicates that no valid price could be resolved for the
	// requested asset and date.
	ErrPriceNotFound = errors.New("price not found")

	// ErrSeriesNotFound indicates that no price series exists for the asset,
	// neither in the cache database nor as a snapshot file.
	ErrSeriesNotFound = errors.New("price series not found")

	// ErrSeriesNotConfigured indicates that no snapshot source location resolves
	// for an asset identifier. Permanent for the session.
	ErrSeriesNotConfigured = errors.New("no snapshot source configured for asset")

	// ErrAssetNotFound indicates that an asset identifier is not in the catalog.
	ErrAssetNotFound = errors.New("asset not found")
)

// Value errors represent parsed data that cannot be used in calculations.
var (
	// ErrInvalidValue indicates a non-positive or non-finite numeric value.
	// Callers treat it exactly like ErrPriceNotFound.
	ErrInvalidValue = errors.New("invalid numeric value")
)

// Upstream errors represent provider or transport failures. They are logged and
// degrade to "no data" for the affected asset; the refresh bookkeeping is left
// untouched so the next access retries.
var (
	// ErrUpstreamFailure indicates a network or provider error, or a response
	// that does not match any accepted shape.
	ErrUpstreamFailure = errors.New("upstream provider failure")
)

// Aggregate errors surface to the user.
var (
	// ErrNoComparableData indicates that zero assets produced a valid result for
	// a comparison request. This is the only per-request failure shown to users.
	ErrNoComparableData = errors.New("no comparable data for any asset")
)

// Request validation errors for the HTTP layer.
var (
	// ErrInvalidAmount indicates a non-positive principal amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidStartDate indicates a missing or unparseable start date.
	ErrInvalidStartDate = errors.New("invalid start date")

	// ErrStartDateInFuture indicates a start date after today.
	ErrStartDateInFuture = errors.New("start date cannot be in the future")

	// ErrInvalidSettingKey indicates an unknown settings key.
	ErrInvalidSettingKey = errors.New("unknown setting key")
)
