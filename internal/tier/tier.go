// Package tier defines subscription tiers and the access predicate used to gate content.
package tier

import "strings"

// Tier is a subscription level.
type Tier string

const (
	None     Tier = "None"
	Basic    Tier = "Basic"
	Diamond  Tier = "Diamond"
	Infinity Tier = "Infinity"
	Script   Tier = "Script"
)

// Hierarchy ranks tiers; a higher rank includes everything below it.
var Hierarchy = map[Tier]int{
	None:     0,
	Basic:    1,
	Diamond:  2,
	Infinity: 3,
	Script:   4,
}

// Order lists tiers from lowest to highest.
var Order = []Tier{None, Basic, Diamond, Infinity, Script}

// Paid lists the tiers that can be purchased.
var Paid = []Tier{Basic, Diamond, Infinity, Script}

// Parse maps a free-form value onto a known tier. Unknown values become None.
func Parse(value string) Tier {
	v := strings.TrimSpace(value)
	for _, t := range Order {
		if strings.EqualFold(v, string(t)) {
			return t
		}
	}
	return None
}

// IsKnown reports whether t is one of the defined tiers.
func (t Tier) IsKnown() bool {
	_, ok := Hierarchy[t]
	return ok
}

// Rank returns the tier's position, -1 for unknown values.
func (t Tier) Rank() int {
	r, ok := Hierarchy[t]
	if !ok {
		return -1
	}
	return r
}

func (t Tier) String() string {
	return string(t)
}

// HasAccess reports whether a viewer on userTier may see content that requires requiredTier.
// Unknown tiers on either side deny access.
func HasAccess(userTier, requiredTier Tier) bool {
	if !userTier.IsKnown() || !requiredTier.IsKnown() {
		return false
	}
	return userTier.Rank() >= requiredTier.Rank()
}

// Accessible returns the tiers a viewer on t can see, lowest first.
func Accessible(t Tier) []Tier {
	var out []Tier
	for _, candidate := range Order {
		if HasAccess(t, candidate) {
			out = append(out, candidate)
		}
	}
	return out
}
