package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchyard/switchyard/internal/domain"
)

func TestEvaluateSwitch_BooleanMode(t *testing.T) {
	tests := []struct {
		name     string
		cfg      domain.SwitchConfig
		payload  interface{}
		expected string
	}{
		{
			name:     "equals_match",
			cfg:      domain.SwitchConfig{ConditionField: "user_type", Operator: domain.OperatorEquals, Value: "premium"},
			payload:  map[string]interface{}{"user_type": "premium"},
			expected: domain.PortTrueOutput,
		},
		{
			name:     "equals_no_match",
			cfg:      domain.SwitchConfig{ConditionField: "user_type", Operator: domain.OperatorEquals, Value: "premium"},
			payload:  map[string]interface{}{"user_type": "standard"},
			expected: domain.PortFalseOutput,
		},
		{
			name:     "not_equals",
			cfg:      domain.SwitchConfig{ConditionField: "user_type", Operator: domain.OperatorNotEquals, Value: "premium"},
			payload:  map[string]interface{}{"user_type": "standard"},
			expected: domain.PortTrueOutput,
		},
		{
			name:     "numeric_coercion_int_vs_float",
			cfg:      domain.SwitchConfig{ConditionField: "count", Operator: domain.OperatorEquals, Value: 5.0},
			payload:  map[string]interface{}{"count": 5},
			expected: domain.PortTrueOutput,
		},
		{
			name:     "less_than_numbers",
			cfg:      domain.SwitchConfig{ConditionField: "age", Operator: domain.OperatorLess, Value: 18},
			payload:  map[string]interface{}{"age": 12},
			expected: domain.PortTrueOutput,
		},
		{
			name:     "greater_equal_strings",
			cfg:      domain.SwitchConfig{ConditionField: "tier", Operator: domain.OperatorGreaterEqual, Value: "b"},
			payload:  map[string]interface{}{"tier": "c"},
			expected: domain.PortTrueOutput,
		},
		{
			name:     "nested_dot_path",
			cfg:      domain.SwitchConfig{ConditionField: "user.profile.age", Operator: domain.OperatorGreater, Value: 21},
			payload:  map[string]interface{}{"user": map[string]interface{}{"profile": map[string]interface{}{"age": 30}}},
			expected: domain.PortTrueOutput,
		},
		{
			name:     "contains_substring",
			cfg:      domain.SwitchConfig{ConditionField: "name", Operator: domain.OperatorContains, Value: "smith"},
			payload:  map[string]interface{}{"name": "blacksmith"},
			expected: domain.PortTrueOutput,
		},
		{
			name:     "contains_list_element",
			cfg:      domain.SwitchConfig{ConditionField: "tags", Operator: domain.OperatorContains, Value: "urgent"},
			payload:  map[string]interface{}{"tags": []interface{}{"urgent", "review"}},
			expected: domain.PortTrueOutput,
		},
		{
			name:     "contains_map_key",
			cfg:      domain.SwitchConfig{ConditionField: "meta", Operator: domain.OperatorContains, Value: "owner"},
			payload:  map[string]interface{}{"meta": map[string]interface{}{"owner": "ops"}},
			expected: domain.PortTrueOutput,
		},
		{
			name:     "in_list_membership",
			cfg:      domain.SwitchConfig{ConditionField: "status", Operator: domain.OperatorIn, Value: []interface{}{"active", "pending"}},
			payload:  map[string]interface{}{"status": "pending"},
			expected: domain.PortTrueOutput,
		},
		{
			name:     "is_null_missing_field_matches",
			cfg:      domain.SwitchConfig{ConditionField: "missing", Operator: domain.OperatorIsNull},
			payload:  map[string]interface{}{"other": 1},
			expected: domain.PortTrueOutput,
		},
		{
			name:     "is_null_present_field",
			cfg:      domain.SwitchConfig{ConditionField: "other", Operator: domain.OperatorIsNull},
			payload:  map[string]interface{}{"other": 1},
			expected: domain.PortFalseOutput,
		},
		{
			name:     "is_not_null_present_field",
			cfg:      domain.SwitchConfig{ConditionField: "other", Operator: domain.OperatorIsNotNull},
			payload:  map[string]interface{}{"other": 1},
			expected: domain.PortTrueOutput,
		},
		{
			name:     "empty_field_selects_whole_payload",
			cfg:      domain.SwitchConfig{Operator: domain.OperatorEquals, Value: "ping"},
			payload:  "ping",
			expected: domain.PortTrueOutput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port, err := EvaluateSwitch("sw", &tt.cfg, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, port)
		})
	}
}

func TestEvaluateSwitch_MultiWayMode(t *testing.T) {
	cfg := &domain.SwitchConfig{
		ConditionField: "status",
		Cases:          []interface{}{"active", "inactive", "pending"},
	}

	port, err := EvaluateSwitch("sw", cfg, map[string]interface{}{"status": "inactive"})
	require.NoError(t, err)
	assert.Equal(t, "case_inactive", port)
}

func TestEvaluateSwitch_MultiWay_NoMatchWithoutDefault(t *testing.T) {
	cfg := &domain.SwitchConfig{
		ConditionField: "status",
		Cases:          []interface{}{"active", "inactive", "pending"},
	}

	_, err := EvaluateSwitch("sw", cfg, map[string]interface{}{"status": "archived"})
	require.Error(t, err)
	assert.True(t, domain.IsNoMatchingCase(err))
}

func TestEvaluateSwitch_MultiWay_DefaultOutput(t *testing.T) {
	cfg := &domain.SwitchConfig{
		ConditionField: "status",
		Cases:          []interface{}{"active", "inactive"},
		DefaultOutput:  true,
	}

	port, err := EvaluateSwitch("sw", cfg, map[string]interface{}{"status": "archived"})
	require.NoError(t, err)
	assert.Equal(t, domain.PortDefaultCase, port)
}

func TestEvaluateSwitch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.SwitchConfig
		payload interface{}
		check   func(error) bool
	}{
		{
			name:    "missing_field",
			cfg:     domain.SwitchConfig{ConditionField: "absent", Operator: domain.OperatorEquals, Value: 1},
			payload: map[string]interface{}{"present": 1},
			check:   domain.IsFieldNotFound,
		},
		{
			name:    "is_not_null_missing_field",
			cfg:     domain.SwitchConfig{ConditionField: "absent", Operator: domain.OperatorIsNotNull},
			payload: map[string]interface{}{},
			check:   domain.IsFieldNotFound,
		},
		{
			name:    "contains_on_scalar",
			cfg:     domain.SwitchConfig{ConditionField: "n", Operator: domain.OperatorContains, Value: 1},
			payload: map[string]interface{}{"n": 42},
			check:   domain.IsTypeMismatch,
		},
		{
			name:    "in_with_scalar_collection",
			cfg:     domain.SwitchConfig{ConditionField: "n", Operator: domain.OperatorIn, Value: 42},
			payload: map[string]interface{}{"n": 42},
			check:   domain.IsTypeMismatch,
		},
		{
			name:    "ordering_on_unordered_type",
			cfg:     domain.SwitchConfig{ConditionField: "flag", Operator: domain.OperatorLess, Value: true},
			payload: map[string]interface{}{"flag": false},
			check:   domain.IsTypeMismatch,
		},
		{
			name:    "startswith_rejected",
			cfg:     domain.SwitchConfig{ConditionField: "name", Operator: "startswith", Value: "a"},
			payload: map[string]interface{}{"name": "abc"},
			check:   domain.IsUnsupportedOperator,
		},
		{
			name:    "matches_rejected",
			cfg:     domain.SwitchConfig{ConditionField: "name", Operator: "matches", Value: ".*"},
			payload: map[string]interface{}{"name": "abc"},
			check:   domain.IsUnsupportedOperator,
		},
		{
			name:    "unknown_operator_rejected",
			cfg:     domain.SwitchConfig{ConditionField: "name", Operator: "like", Value: "a"},
			payload: map[string]interface{}{"name": "abc"},
			check:   domain.IsUnsupportedOperator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EvaluateSwitch("sw", &tt.cfg, tt.payload)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error class: %v", err)
			assert.True(t, domain.IsEvaluationError(err))
		})
	}
}
