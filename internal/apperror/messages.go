package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General
	CodeInvalidInput:       "Invalid input provided",
	CodeInvalidFormat:      "Invalid data format",
	CodeNotFound:           "Resource not found",
	CodeConfigurationError: "Configuration error",
	CodeInternalError:      "Internal error",
	CodeUnknownError:       "An unknown error occurred",

	// Simulator and session
	CodeNoLiquidity:       "No orders available on this side of the book",
	CodeInsufficientDepth: "Requested quantity exceeds the available order depth",
	CodeSessionClosed:     "Trading session is closed",

	// Recipe resolver
	CodeNotCraftable:          "Item has no recipe",
	CodeMaterialNotObtainable: "Material is neither listed nor decomposable",
	CodeCyclicRecipe:          "Recipe tree contains a cycle",

	// Flip evaluation
	CodeNotFlippable: "Item does not meet the strategy preconditions",

	// Market feeds
	CodeBazaarFetchFailed:   "Failed to fetch bazaar data",
	CodeItemDataFetchFailed: "Failed to fetch item data",
	CodeRecipeLoadFailed:    "Failed to load recipe data",
	CodeCacheReadFailed:     "Failed to read cached feed data",
	CodeCacheWriteFailed:    "Failed to write feed data to cache",
	CodeItemNotListed:       "Item is not listed on the bazaar",
	CodeRateLimitExceeded:   "Rate limit exceeded",
	CodeCircuitOpen:         "Circuit breaker is open",

	// Storage
	CodeStorageError: "Flip history storage error",
}
