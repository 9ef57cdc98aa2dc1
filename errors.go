// errors.go: comprehensive error handling for refbitcache operations
//
// This file provides structured error types using the go-errors library,
// enabling rich error context, categorization, and standardized error
// codes for all cache operations.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package refbitcache

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for refbitcache operations
const (
	// Configuration errors (1xxx)
	ErrCodeInvalidCapacity errors.ErrorCode = "REFBITCACHE_INVALID_CAPACITY"

	// Operation errors (2xxx)
	ErrCodeAllocationFailed errors.ErrorCode = "REFBITCACHE_ALLOCATION_FAILED"
	ErrCodeNoUnpinnedVictim errors.ErrorCode = "REFBITCACHE_NO_UNPINNED_VICTIM"
	ErrCodeForcedEviction   errors.ErrorCode = "REFBITCACHE_FORCED_EVICTION"

	// Index errors (3xxx)
	ErrCodeRehashFailed errors.ErrorCode = "REFBITCACHE_REHASH_FAILED"

	// Lifecycle errors (4xxx)
	ErrCodeHeldAtClose errors.ErrorCode = "REFBITCACHE_HELD_AT_CLOSE"

	// Internal errors (5xxx)
	ErrCodeInternalError errors.ErrorCode = "REFBITCACHE_INTERNAL_ERROR"
)

// Common error messages
const (
	msgInvalidCapacity = "invalid capacity: must be greater than 0"
	msgAllocationFailed = "allocator refused payload or cell allocation"
	msgNoUnpinnedVictim = "every slot is pinned; clock sweep found no unpinned victim"
	msgForcedEviction   = "forced eviction of a pinned slot (fallback B)"
	msgRehashFailed     = "allocator refused larger key index; keeping old table"
	msgHeldAtClose      = "cell still held by outstanding handles at close"
	msgInternalError    = "internal cache error"
)

// =============================================================================
// CONFIGURATION ERRORS
// =============================================================================

// NewErrInvalidCapacity creates an error for a non-positive capacity.
func NewErrInvalidCapacity(capacity int) error {
	return errors.NewWithContext(ErrCodeInvalidCapacity, msgInvalidCapacity, map[string]interface{}{
		"provided_capacity": capacity,
		"minimum_required":  1,
	})
}

// =============================================================================
// OPERATION ERRORS
// =============================================================================

// NewErrAllocationFailed creates an error when admission fails to
// allocate the key string, cell, or payload copy. Retryable, since the
// caller may free other resources and retry the same Access.
func NewErrAllocationFailed(key string) error {
	return errors.NewWithField(ErrCodeAllocationFailed, msgAllocationFailed, "key", key).
		AsRetryable()
}

// NewErrNoUnpinnedVictim creates a warning-grade error for the rare
// state where find_victim exhausted both clock passes and Fallback A's
// empty-slot scan without finding anything to reclaim. Not retryable
// from the caller's perspective: the cache will already have fallen
// through to Fallback B by the time this is surfaced.
func NewErrNoUnpinnedVictim(capacity int) error {
	return errors.NewWithContext(ErrCodeNoUnpinnedVictim, msgNoUnpinnedVictim, map[string]interface{}{
		"capacity": capacity,
	}).WithSeverity("warning")
}

// NewErrForcedEviction creates a warning for Fallback B: the slot named
// by the hand at entry was pinned and was evicted anyway.
func NewErrForcedEviction(slot int, key string) error {
	return errors.NewWithContext(ErrCodeForcedEviction, msgForcedEviction, map[string]interface{}{
		"slot": slot,
		"key":  key,
	}).WithSeverity("warning")
}

// =============================================================================
// INDEX ERRORS
// =============================================================================

// NewErrRehashFailed creates a non-fatal warning when the allocator
// refuses the larger key index table. The old table remains in use.
func NewErrRehashFailed(oldSize, wantSize int) error {
	return errors.NewWithContext(ErrCodeRehashFailed, msgRehashFailed, map[string]interface{}{
		"old_size":  oldSize,
		"want_size": wantSize,
	}).WithSeverity("warning")
}

// =============================================================================
// LIFECYCLE ERRORS
// =============================================================================

// NewErrHeldAtClose creates a warning when Close frees a cell that
// still has outstanding handles. This is a caller contract violation:
// the cache warns and frees anyway, per spec.md §4.4 destroy.
func NewErrHeldAtClose(slot int, key string, refcount int) error {
	return errors.NewWithContext(ErrCodeHeldAtClose, msgHeldAtClose, map[string]interface{}{
		"slot":     slot,
		"key":      key,
		"refcount": refcount,
	}).WithSeverity("warning")
}

// =============================================================================
// INTERNAL ERRORS
// =============================================================================

// NewErrInternal creates a generic internal error.
func NewErrInternal(operation string, cause error) error {
	if cause != nil {
		return errors.Wrap(cause, ErrCodeInternalError, msgInternalError).
			WithContext("operation", operation).
			WithSeverity("warning")
	}
	return errors.NewWithField(ErrCodeInternalError, msgInternalError, "operation", operation).
		WithSeverity("warning")
}

// =============================================================================
// ERROR CHECKING HELPERS
// =============================================================================

// IsInvalidCapacity checks if error is an invalid capacity error.
func IsInvalidCapacity(err error) bool {
	return errors.HasCode(err, ErrCodeInvalidCapacity)
}

// IsAllocationFailed checks if error is an allocation failure.
func IsAllocationFailed(err error) bool {
	return errors.HasCode(err, ErrCodeAllocationFailed)
}

// IsForcedEviction checks if error reports a forced eviction of a
// pinned slot (Fallback B).
func IsForcedEviction(err error) bool {
	return errors.HasCode(err, ErrCodeForcedEviction)
}

// IsRetryable checks if the error can be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts context from an error.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var cacheErr *errors.Error
	if goerrors.As(err, &cacheErr) {
		return cacheErr.Context
	}
	return nil
}
