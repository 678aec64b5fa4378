package pricing

import "phonelister/internal/domain"

type conditionLabels map[domain.Condition]string

var platformConditionLabels = map[domain.Platform]conditionLabels{
	domain.PlatformX: {
		domain.ConditionNew:       "New",
		domain.ConditionGood:      "Good",
		domain.ConditionScrap:     "Scrap",
		domain.ConditionAsNew:     "Good",
		domain.ConditionExcellent: "Good",
		domain.ConditionUsable:    "Scrap",
	},
	domain.PlatformY: {
		domain.ConditionNew:       "3 stars (Excellent)",
		domain.ConditionGood:      "2 stars (Good)",
		domain.ConditionScrap:     "1 star (Usable)",
		domain.ConditionAsNew:     "3 stars (Excellent)",
		domain.ConditionExcellent: "3 stars (Excellent)",
		domain.ConditionUsable:    "1 star (Usable)",
	},
	domain.PlatformZ: {
		domain.ConditionNew:       "New",
		domain.ConditionGood:      "Good",
		domain.ConditionScrap:     "Good",
		domain.ConditionAsNew:     "As New",
		domain.ConditionExcellent: "As New",
		domain.ConditionUsable:    "Good",
	},
}

// MapConditionForPlatform translates a canonical condition into the label a
// platform displays. Conditions a platform has no entry for (Fair, or free
// text) take that platform's "Good" label.
func MapConditionForPlatform(condition string, p domain.Platform) string {
	labels, ok := platformConditionLabels[p]
	if !ok {
		return condition
	}
	if label, ok := labels[domain.Condition(condition)]; ok {
		return label
	}
	if label, ok := labels[domain.ConditionGood]; ok {
		return label
	}
	return condition
}
