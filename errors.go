package switchyard

import (
	"github.com/switchyard/switchyard/internal/domain"
)

// Sentinel errors surfaced by the Manager.
var (
	ErrRunNotFound      = domain.ErrRunNotFound
	ErrInvalidConfig    = domain.ErrInvalidConfig
	ErrAlreadyClosed    = domain.ErrAlreadyClosed
	ErrNodeUnregistered = domain.ErrNodeUnregistered
)

// Error-classification helpers, one per domain error family.
var (
	IsDuplicateNode        = domain.IsDuplicateNode
	IsUnknownNode          = domain.IsUnknownNode
	IsPortConflict         = domain.IsPortConflict
	IsCycleDetected        = domain.IsCycleDetected
	IsFieldNotFound        = domain.IsFieldNotFound
	IsTypeMismatch         = domain.IsTypeMismatch
	IsUnsupportedOperator  = domain.IsUnsupportedOperator
	IsNoMatchingCase       = domain.IsNoMatchingCase
	IsMissingRequiredInput = domain.IsMissingRequiredInput
	IsEvaluationError      = domain.IsEvaluationError
)
