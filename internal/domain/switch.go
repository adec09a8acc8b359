package domain

import (
	"fmt"
)

type Operator string

const (
	OperatorEquals       Operator = "=="
	OperatorNotEquals    Operator = "!="
	OperatorLess         Operator = "<"
	OperatorLessEqual    Operator = "<="
	OperatorGreater      Operator = ">"
	OperatorGreaterEqual Operator = ">="
	OperatorContains     Operator = "contains"
	OperatorIn           Operator = "in"
	OperatorIsNull       Operator = "is_null"
	OperatorIsNotNull    Operator = "is_not_null"
)

// SwitchConfig describes the predicate a switch node evaluates against its
// input payload. Exactly one of Value (boolean mode) or Cases (multi-way
// mode) should be set.
type SwitchConfig struct {
	ConditionField string        `json:"condition_field"`
	Operator       Operator      `json:"operator"`
	Value          interface{}   `json:"value,omitempty"`
	Cases          []interface{} `json:"cases,omitempty"`
	DefaultOutput  bool          `json:"default_output,omitempty"`
}

// MultiWay reports whether the switch routes by case label rather than a
// boolean discriminator.
func (c *SwitchConfig) MultiWay() bool {
	return len(c.Cases) > 0
}

// CasePort is the output port name a matched case value routes to.
func CasePort(value interface{}) string {
	return fmt.Sprintf("case_%v", value)
}
