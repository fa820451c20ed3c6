package gog

import "errors"

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid gog client configuration")

	// ErrCatalogFetch is returned when the catalog endpoint cannot be reached
	// or returns a malformed body
	ErrCatalogFetch = errors.New("catalog fetch failed")

	// ErrDetailsUnavailable is returned when a game page cannot be fetched or
	// carries no description block
	ErrDetailsUnavailable = errors.New("game details unavailable")

	// ErrImageDownload is returned when an image URL cannot be downloaded
	ErrImageDownload = errors.New("image download failed")
)
