package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRunNotFound     = errors.New("run not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrAlreadyClosed   = errors.New("already closed")
	ErrNodeUnregistered = errors.New("node type not registered")
)

type DuplicateNodeError struct {
	NodeID string
}

func (e *DuplicateNodeError) Error() string {
	return "duplicate node id: " + e.NodeID
}

func NewDuplicateNodeError(nodeID string) *DuplicateNodeError {
	return &DuplicateNodeError{NodeID: nodeID}
}

type UnknownNodeError struct {
	NodeID string
}

func (e *UnknownNodeError) Error() string {
	return "unknown node id: " + e.NodeID
}

func NewUnknownNodeError(nodeID string) *UnknownNodeError {
	return &UnknownNodeError{NodeID: nodeID}
}

type PortConflictError struct {
	NodeID string
	Port   string
}

func (e *PortConflictError) Error() string {
	return fmt.Sprintf("input port %s.%s already has an incoming connection", e.NodeID, e.Port)
}

func NewPortConflictError(nodeID, port string) *PortConflictError {
	return &PortConflictError{NodeID: nodeID, Port: port}
}

type CycleDetectedError struct {
	From string
	To   string
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("edge %s -> %s closes a cycle", e.From, e.To)
}

func NewCycleDetectedError(from, to string) *CycleDetectedError {
	return &CycleDetectedError{From: from, To: to}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return "field not found in payload: " + e.Field
}

func NewFieldNotFoundError(field string) *FieldNotFoundError {
	return &FieldNotFoundError{Field: field}
}

type TypeMismatchError struct {
	Operator Operator
	Field    string
	Message  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("operator %s cannot be applied to field %s: %s", e.Operator, e.Field, e.Message)
}

func NewTypeMismatchError(op Operator, field, message string) *TypeMismatchError {
	return &TypeMismatchError{Operator: op, Field: field, Message: message}
}

type UnsupportedOperatorError struct {
	Operator Operator
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported switch operator: %s", e.Operator)
}

func NewUnsupportedOperatorError(op Operator) *UnsupportedOperatorError {
	return &UnsupportedOperatorError{Operator: op}
}

type NoMatchingCaseError struct {
	NodeID string
	Value  interface{}
}

func (e *NoMatchingCaseError) Error() string {
	return fmt.Sprintf("switch %s: no case matches value %v and no default output is declared", e.NodeID, e.Value)
}

func NewNoMatchingCaseError(nodeID string, value interface{}) *NoMatchingCaseError {
	return &NoMatchingCaseError{NodeID: nodeID, Value: value}
}

type MissingRequiredInputError struct {
	NodeID string
	Inputs []string
}

func (e *MissingRequiredInputError) Error() string {
	return fmt.Sprintf("merge %s: required inputs missing: %v", e.NodeID, e.Inputs)
}

func NewMissingRequiredInputError(nodeID string, inputs []string) *MissingRequiredInputError {
	return &MissingRequiredInputError{NodeID: nodeID, Inputs: inputs}
}

type NodeExecutionError struct {
	NodeID string
	Err    error
}

func (e *NodeExecutionError) Error() string {
	return fmt.Sprintf("node %s execution failed: %v", e.NodeID, e.Err)
}

func (e *NodeExecutionError) Unwrap() error {
	return e.Err
}

func NewNodeExecutionError(nodeID string, err error) *NodeExecutionError {
	return &NodeExecutionError{NodeID: nodeID, Err: err}
}

func IsDuplicateNode(err error) bool {
	var target *DuplicateNodeError
	return errors.As(err, &target)
}

func IsUnknownNode(err error) bool {
	var target *UnknownNodeError
	return errors.As(err, &target)
}

func IsPortConflict(err error) bool {
	var target *PortConflictError
	return errors.As(err, &target)
}

func IsCycleDetected(err error) bool {
	var target *CycleDetectedError
	return errors.As(err, &target)
}

func IsFieldNotFound(err error) bool {
	var target *FieldNotFoundError
	return errors.As(err, &target)
}

func IsTypeMismatch(err error) bool {
	var target *TypeMismatchError
	return errors.As(err, &target)
}

func IsUnsupportedOperator(err error) bool {
	var target *UnsupportedOperatorError
	return errors.As(err, &target)
}

func IsNoMatchingCase(err error) bool {
	var target *NoMatchingCaseError
	return errors.As(err, &target)
}

func IsMissingRequiredInput(err error) bool {
	var target *MissingRequiredInputError
	return errors.As(err, &target)
}

// IsEvaluationError reports whether err belongs to the switch-evaluation
// error family, as opposed to graph-construction or node-execution errors.
func IsEvaluationError(err error) bool {
	return IsFieldNotFound(err) ||
		IsTypeMismatch(err) ||
		IsUnsupportedOperator(err) ||
		IsNoMatchingCase(err)
}
