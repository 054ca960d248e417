package hexvault

import "hexvault/errs"

// Error is the concrete error type every hexvault operation returns.
type Error = errs.Error

// Sentinel errors for use with errors.Is. Every Error value returned by
// this package matches exactly one of these regardless of the Layer or
// Detail it carries.
var (
	ErrInvalidMasterKeyLength = errs.ErrInvalidMasterKeyLength
	ErrInvalidIdentifier      = errs.ErrInvalidIdentifier
	ErrDuplicateCell          = errs.ErrDuplicateCell
	ErrDuplicatePayload       = errs.ErrDuplicatePayload
	ErrPayloadNotFound        = errs.ErrPayloadNotFound
	ErrMissingContext         = errs.ErrMissingContext
	ErrAuthenticationFailed   = errs.ErrAuthenticationFailed
	ErrCryptoBackendFailure   = errs.ErrCryptoBackendFailure
	ErrSinkError              = errs.ErrSinkError
	ErrSelfTraversal          = errs.ErrSelfTraversal
)
