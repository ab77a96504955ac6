package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound   = "user not found"
	ErrMsgProgressExists = "progress document already exists"

	// Quest errors
	ErrMsgQuestNotFound         = "quest not found"
	ErrMsgQuestAlreadyCompleted = "quest already completed"

	// Savings errors
	ErrMsgSavingsEventNotFound = "savings event not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Transaction errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrUserNotFound is the precondition failure for a missing progress document.
	// Callers must create the document at account creation before awarding anything.
	ErrUserNotFound   = errors.New(ErrMsgUserNotFound)
	ErrProgressExists = errors.New(ErrMsgProgressExists)

	ErrQuestNotFound         = errors.New(ErrMsgQuestNotFound)
	ErrQuestAlreadyCompleted = errors.New(ErrMsgQuestAlreadyCompleted)

	ErrSavingsEventNotFound = errors.New(ErrMsgSavingsEventNotFound)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
