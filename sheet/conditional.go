package sheet

import "strings"

// Operator is the predicate of a conditional rule.
type Operator string

const (
	OpEqual          Operator = "equal"
	OpNotEqual       Operator = "notEqual"
	OpGreaterThan    Operator = "greaterThan"
	OpGreaterOrEqual Operator = "greaterThanOrEqual"
	OpLessThan       Operator = "lessThan"
	OpLessOrEqual    Operator = "lessThanOrEqual"
	OpBetween        Operator = "between"
	OpContainsText   Operator = "containsText"
	OpBlank          Operator = "blank"
	OpNotBlank       Operator = "notBlank"
)

// ConditionalRule pairs a predicate over a cell's resolved value with a
// style to merge when the predicate holds. Rules attach to a table and
// are evaluated per data cell, in declared order.
type ConditionalRule struct {
	Operator Operator
	Value    Value
	Value2   Value
	Text     string
	Style    *CellStyle
}

// Matches evaluates the rule's predicate against a resolved cell value.
// Ordering operators only match values of the same orderable kind.
func (r ConditionalRule) Matches(v Value) bool {
	switch r.Operator {
	case OpEqual:
		return v.Equal(r.Value)
	case OpNotEqual:
		return !v.Equal(r.Value)
	case OpGreaterThan:
		c, ok := v.Compare(r.Value)
		return ok && c > 0
	case OpGreaterOrEqual:
		c, ok := v.Compare(r.Value)
		return ok && c >= 0
	case OpLessThan:
		c, ok := v.Compare(r.Value)
		return ok && c < 0
	case OpLessOrEqual:
		c, ok := v.Compare(r.Value)
		return ok && c <= 0
	case OpBetween:
		lo, okLo := v.Compare(r.Value)
		hi, okHi := v.Compare(r.Value2)
		return okLo && okHi && lo >= 0 && hi <= 0
	case OpContainsText:
		return v.Kind() == ValueText && strings.Contains(v.String(), r.Text)
	case OpBlank:
		return v.IsNull()
	case OpNotBlank:
		return !v.IsNull()
	default:
		return false
	}
}

// NegativeRule matches negative numbers.
func NegativeRule(style *CellStyle) ConditionalRule {
	return ConditionalRule{Operator: OpLessThan, Value: Number(0), Style: style}
}

// PositiveRule matches positive numbers.
func PositiveRule(style *CellStyle) ConditionalRule {
	return ConditionalRule{Operator: OpGreaterThan, Value: Number(0), Style: style}
}

// ZeroRule matches zero.
func ZeroRule(style *CellStyle) ConditionalRule {
	return ConditionalRule{Operator: OpEqual, Value: Number(0), Style: style}
}
