package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	CodeInvalidInput       Code = "INVALID_INPUT"
	CodeInvalidFormat      Code = "INVALID_FORMAT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeConfigurationError Code = "CONFIGURATION_ERROR"
	CodeInternalError      Code = "INTERNAL_ERROR"
	CodeUnknownError       Code = "UNKNOWN_ERROR"
)

// Order book simulator and trading session error codes
const (
	CodeNoLiquidity       Code = "NO_LIQUIDITY"
	CodeInsufficientDepth Code = "INSUFFICIENT_DEPTH"
	CodeSessionClosed     Code = "SESSION_CLOSED"
)

// Recipe resolver error codes
const (
	CodeNotCraftable          Code = "NOT_CRAFTABLE"
	CodeMaterialNotObtainable Code = "MATERIAL_NOT_OBTAINABLE"
	CodeCyclicRecipe          Code = "CYCLIC_RECIPE"
)

// Flip evaluation error codes
const (
	CodeNotFlippable Code = "NOT_FLIPPABLE"
)

// Market feed error codes
const (
	CodeBazaarFetchFailed   Code = "BAZAAR_FETCH_FAILED"
	CodeItemDataFetchFailed Code = "ITEM_DATA_FETCH_FAILED"
	CodeRecipeLoadFailed    Code = "RECIPE_LOAD_FAILED"
	CodeCacheReadFailed     Code = "CACHE_READ_FAILED"
	CodeCacheWriteFailed    Code = "CACHE_WRITE_FAILED"
	CodeItemNotListed       Code = "ITEM_NOT_LISTED"
	CodeRateLimitExceeded   Code = "RATE_LIMIT_EXCEEDED"
	CodeCircuitOpen         Code = "CIRCUIT_OPEN"
)

// Storage error codes
const (
	CodeStorageError Code = "STORAGE_ERROR"
)
