// Package subscription manages subscription contracts and the session lifetime they drive.
package subscription

import (
	"math"
	"time"

	"github.com/lumiforge/tierhub-backend/internal/plan"
	"github.com/lumiforge/tierhub-backend/internal/ydb"
)

// Stored contract statuses.
const (
	StatusActive     = "active"
	StatusCancelled  = "cancelled"
	StatusSuperseded = "superseded"
)

// Statuses shown to the user.
const (
	DisplayActive  = "active"
	DisplayExpired = "expired"
)

// minSessionTTL is the floor applied to subscription-driven sessions.
const minSessionTTL = time.Hour

// EndDateFor returns the contract end for a billing cycle started at start.
// One-time purchases never end.
func EndDateFor(billingCycle string, start time.Time) *time.Time {
	var end time.Time
	switch billingCycle {
	case plan.BillingMonthly:
		end = start.AddDate(0, 1, 0)
	case plan.BillingAnnual:
		end = start.AddDate(1, 0, 0)
	default:
		return nil
	}
	return &end
}

// DisplayStatus reports "active" while the contract is in force, "expired" otherwise.
func DisplayStatus(c *ydb.Contract, now time.Time) string {
	if c == nil || c.Status != StatusActive {
		return DisplayExpired
	}
	if c.EndDate != nil && !now.Before(*c.EndDate) {
		return DisplayExpired
	}
	return DisplayActive
}

// DaysRemaining returns whole days left, rounded up. ok is false for lifetime contracts.
func DaysRemaining(c *ydb.Contract, now time.Time) (days int, ok bool) {
	if c == nil || c.EndDate == nil {
		return 0, false
	}
	left := c.EndDate.Sub(now)
	if left <= 0 {
		return 0, true
	}
	return int(math.Ceil(left.Hours() / 24)), true
}

// SessionTTL derives the session lifetime from the user's contracts:
// the remaining time of the latest-ending active contract, capped at max and
// floored at one hour. Lifetime contracts get max, no active contract gets def.
func SessionTTL(contracts []*ydb.Contract, now time.Time, def, max time.Duration) time.Duration {
	if def > max {
		def = max
	}

	var latest *time.Time
	for _, c := range contracts {
		if DisplayStatus(c, now) != DisplayActive {
			continue
		}
		if c.EndDate == nil {
			return max
		}
		if latest == nil || c.EndDate.After(*latest) {
			latest = c.EndDate
		}
	}
	if latest == nil {
		return def
	}

	ttl := latest.Sub(now)
	if ttl > max {
		ttl = max
	}
	if ttl < minSessionTTL {
		ttl = minSessionTTL
	}
	return ttl
}
