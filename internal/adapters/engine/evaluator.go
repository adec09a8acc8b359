package engine

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/switchyard/switchyard/internal/domain"
)

// rejectedOperators are predicate operators the documentation surface admits
// to but the evaluator was never given semantics for. They fail fast instead
// of silently matching nothing.
var rejectedOperators = map[domain.Operator]bool{
	"startswith": true,
	"endswith":   true,
	"matches":    true,
}

// EvaluateSwitch is a pure function of the switch configuration and the
// input payload. It yields exactly one live output port name.
func EvaluateSwitch(nodeID string, cfg *domain.SwitchConfig, payload interface{}) (string, error) {
	if cfg == nil {
		return "", domain.NewValidationError("switch", fmt.Sprintf("node %s has no switch configuration", nodeID))
	}

	if rejectedOperators[cfg.Operator] {
		return "", domain.NewUnsupportedOperatorError(cfg.Operator)
	}

	field, found := extractField(payload, cfg.ConditionField)

	switch cfg.Operator {
	case domain.OperatorIsNull:
		// A missing field counts as null.
		return boolPort(!found || field == nil), nil
	case domain.OperatorIsNotNull:
		if !found {
			return "", domain.NewFieldNotFoundError(cfg.ConditionField)
		}
		return boolPort(field != nil), nil
	case domain.OperatorEquals, domain.OperatorNotEquals,
		domain.OperatorLess, domain.OperatorLessEqual,
		domain.OperatorGreater, domain.OperatorGreaterEqual,
		domain.OperatorContains, domain.OperatorIn:
	case "":
		// Multi-way switches may omit the operator; cases then compare
		// with equality.
		if !cfg.MultiWay() {
			return "", domain.NewUnsupportedOperatorError(cfg.Operator)
		}
	default:
		return "", domain.NewUnsupportedOperatorError(cfg.Operator)
	}

	if !found {
		return "", domain.NewFieldNotFoundError(cfg.ConditionField)
	}

	if cfg.MultiWay() {
		return evaluateCases(nodeID, cfg, field)
	}

	matched, err := applyOperator(cfg.Operator, cfg.ConditionField, field, cfg.Value)
	if err != nil {
		return "", err
	}
	return boolPort(matched), nil
}

func evaluateCases(nodeID string, cfg *domain.SwitchConfig, field interface{}) (string, error) {
	op := cfg.Operator
	if op == "" {
		op = domain.OperatorEquals
	}

	for _, candidate := range cfg.Cases {
		matched, err := applyOperator(op, cfg.ConditionField, field, candidate)
		if err != nil {
			return "", err
		}
		if matched {
			return domain.CasePort(candidate), nil
		}
	}

	if cfg.DefaultOutput {
		return domain.PortDefaultCase, nil
	}
	return "", domain.NewNoMatchingCaseError(nodeID, field)
}

func boolPort(matched bool) string {
	if matched {
		return domain.PortTrueOutput
	}
	return domain.PortFalseOutput
}

// extractField walks a dot-path through nested string-keyed maps. An empty
// path selects the whole payload.
func extractField(payload interface{}, path string) (interface{}, bool) {
	if path == "" {
		return payload, true
	}

	current := payload
	for _, part := range strings.Split(path, ".") {
		asMap, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = asMap[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func applyOperator(op domain.Operator, fieldPath string, field, value interface{}) (bool, error) {
	switch op {
	case domain.OperatorEquals:
		return valuesEqual(field, value), nil
	case domain.OperatorNotEquals:
		return !valuesEqual(field, value), nil
	case domain.OperatorLess, domain.OperatorLessEqual, domain.OperatorGreater, domain.OperatorGreaterEqual:
		return applyOrdering(op, fieldPath, field, value)
	case domain.OperatorContains:
		return applyContains(fieldPath, field, value)
	case domain.OperatorIn:
		return applyIn(fieldPath, field, value)
	default:
		return false, domain.NewUnsupportedOperatorError(op)
	}
}

func valuesEqual(a, b interface{}) bool {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
	}
	return reflect.DeepEqual(a, b)
}

func applyOrdering(op domain.Operator, fieldPath string, field, value interface{}) (bool, error) {
	var cmp int
	if af, aok := asFloat(field); aok {
		bf, bok := asFloat(value)
		if !bok {
			return false, domain.NewTypeMismatchError(op, fieldPath, fmt.Sprintf("cannot compare number with %T", value))
		}
		switch {
		case af < bf:
			cmp = -1
		case af > bf:
			cmp = 1
		}
	} else if as, aok := field.(string); aok {
		bs, bok := value.(string)
		if !bok {
			return false, domain.NewTypeMismatchError(op, fieldPath, fmt.Sprintf("cannot compare string with %T", value))
		}
		cmp = strings.Compare(as, bs)
	} else {
		return false, domain.NewTypeMismatchError(op, fieldPath, fmt.Sprintf("field type %T is not ordered", field))
	}

	switch op {
	case domain.OperatorLess:
		return cmp < 0, nil
	case domain.OperatorLessEqual:
		return cmp <= 0, nil
	case domain.OperatorGreater:
		return cmp > 0, nil
	default:
		return cmp >= 0, nil
	}
}

// applyContains checks membership in the field value: substring for strings,
// element membership for slices, key membership for maps. Scalar fields are
// a type error, never a silent false.
func applyContains(fieldPath string, field, value interface{}) (bool, error) {
	switch f := field.(type) {
	case string:
		s, ok := value.(string)
		if !ok {
			return false, domain.NewTypeMismatchError(domain.OperatorContains, fieldPath, fmt.Sprintf("string field cannot contain %T", value))
		}
		return strings.Contains(f, s), nil
	case []interface{}:
		for _, element := range f {
			if valuesEqual(element, value) {
				return true, nil
			}
		}
		return false, nil
	case map[string]interface{}:
		key, ok := value.(string)
		if !ok {
			return false, domain.NewTypeMismatchError(domain.OperatorContains, fieldPath, fmt.Sprintf("map field cannot contain non-string key %T", value))
		}
		_, exists := f[key]
		return exists, nil
	default:
		return false, domain.NewTypeMismatchError(domain.OperatorContains, fieldPath, fmt.Sprintf("field type %T is not a sequence or mapping", field))
	}
}

// applyIn is the inverse direction: the field value must be a member of the
// configured collection.
func applyIn(fieldPath string, field, value interface{}) (bool, error) {
	switch v := value.(type) {
	case []interface{}:
		for _, element := range v {
			if valuesEqual(element, field) {
				return true, nil
			}
		}
		return false, nil
	case map[string]interface{}:
		key, ok := field.(string)
		if !ok {
			return false, domain.NewTypeMismatchError(domain.OperatorIn, fieldPath, fmt.Sprintf("non-string field %T cannot index a mapping", field))
		}
		_, exists := v[key]
		return exists, nil
	case string:
		s, ok := field.(string)
		if !ok {
			return false, domain.NewTypeMismatchError(domain.OperatorIn, fieldPath, fmt.Sprintf("non-string field %T cannot be a substring", field))
		}
		return strings.Contains(v, s), nil
	default:
		return false, domain.NewTypeMismatchError(domain.OperatorIn, fieldPath, fmt.Sprintf("configured value %T is not a sequence or mapping", value))
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
