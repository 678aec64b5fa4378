package domain

import "strings"

type Condition string

const (
	ConditionNew       Condition = "New"
	ConditionExcellent Condition = "Excellent"
	ConditionGood      Condition = "Good"
	ConditionFair      Condition = "Fair"
	ConditionAsNew     Condition = "As New"
	ConditionUsable    Condition = "Usable"
	ConditionScrap     Condition = "Scrap"
)

var conditions = []Condition{
	ConditionNew, ConditionExcellent, ConditionGood, ConditionFair,
	ConditionAsNew, ConditionUsable, ConditionScrap,
}

// Conditions returns the accepted grades in display order.
func Conditions() []Condition {
	return append([]Condition(nil), conditions...)
}

// ParseCondition matches s against the known grades ignoring case and
// surrounding space, returning the canonical spelling.
func ParseCondition(s string) (Condition, bool) {
	s = strings.TrimSpace(s)
	for _, c := range conditions {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}
