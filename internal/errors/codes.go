package errors

// Error code constants
// Format: CATEGORY_SPECIFIC_DETAIL
// Clients map these codes to user-facing messages

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Games (GAME_) ====================
	GameNotFound = "GAME_NOT_FOUND"

	// ==================== Catalog sync (SYNC_) ====================
	SyncAlreadyRunning    = "SYNC_ALREADY_RUNNING"    // another populate run holds the lock
	CatalogFetchFailed    = "CATALOG_FETCH_FAILED"    // fatal: no product list, nothing created
	TaxonomyRemoteFailed  = "TAXONOMY_REMOTE_FAILED"  // per-name lookup/create failure, entity may stay absent
	EnrichmentUnavailable = "ENRICHMENT_UNAVAILABLE"  // game created without description/rating
	MediaUploadFailed     = "MEDIA_UPLOAD_FAILED"     // game created without that attachment

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalExternalAPI = "INTERNAL_EXTERNAL_API"
	InternalDatabase    = "INTERNAL_DATABASE"
)
