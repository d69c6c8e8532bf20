package errors

// Error code constants returned in API responses. The frontend maps
// these codes to its own messages.
// Format: CATEGORY_SPECIFIC_DETAIL
const (
	// Validation
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"

	// Catalog
	CatalogProductNotFound = "CATALOG_PRODUCT_NOT_FOUND"

	// Cart
	CartInvalidQuantity = "CART_INVALID_QUANTITY"

	// Generic
	ResourceNotFound    = "RESOURCE_NOT_FOUND"
	InternalServerError = "INTERNAL_SERVER_ERROR"
)
