// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Seed errors
	ErrEmptySeed = errors.New("seed cannot be empty")

	// Catalog errors
	ErrEmptyCatalog       = errors.New("platform catalog is empty")
	ErrInvalidPlatform    = errors.New("invalid platform entry")
	ErrDuplicatePlatform  = errors.New("duplicate platform name")
	ErrInvalidURLTemplate = errors.New("url template must contain exactly one {} slot")

	// Run errors
	ErrInvalidMode    = errors.New("invalid run mode")
	ErrDispatchFailed = errors.New("dispatch failed")
	ErrInvalidState   = errors.New("invalid state transition")

	// Export errors
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNothingToSave     = errors.New("nothing to save")
)
