package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Site errors
	ErrSiteNotFound     = "SITE_NOT_FOUND"
	ErrSiteNotSpecified = "SITE_NOT_SPECIFIED"
	ErrSiteExists       = "SITE_EXISTS"
	ErrConfigInvalid    = "CONFIG_INVALID"

	// Menu errors
	ErrMenuNotFound = "MENU_NOT_FOUND"
	ErrMenuExists   = "MENU_EXISTS"

	// Content errors
	ErrPageExists = "PAGE_EXISTS"
	ErrTermExists = "TERM_EXISTS"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Database errors
	ErrDatabaseError = "DATABASE_ERROR"

	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnItemSkipped = "ITEM_SKIPPED"
	WarnItemFailed  = "ITEM_FAILED"
	WarnMenuSkipped = "MENU_SKIPPED"
	WarnAuditFailed = "AUDIT_LOG_FAILED"
)
