package model

import "errors"

// Error taxonomy shared by the services and mapped to HTTP statuses by the
// server. Storage failures outside this set propagate unchanged.
var (
	// ErrAuthenticationFailed is returned for unknown emails and wrong
	// passwords alike.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrUnauthorized is returned when a gated operation has no valid session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDuplicateContent reports a uniqueness violation on a title or email.
	ErrDuplicateContent = errors.New("duplicate content")
	// ErrUnknownReference reports a question pointing at a missing theme.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrContentRuleViolation reports an answer set that breaks the
	// exactly-one-correct or minimum-count rule.
	ErrContentRuleViolation = errors.New("content does not match rules")
)
