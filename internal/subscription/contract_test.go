package subscription

import (
	"testing"
	"time"

	"github.com/lumiforge/tierhub-backend/internal/plan"
	"github.com/lumiforge/tierhub-backend/internal/ydb"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func contractEnding(end *time.Time) *ydb.Contract {
	return &ydb.Contract{ContractID: "c1", Status: StatusActive, StartDate: now.AddDate(0, -1, 0), EndDate: end}
}

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestEndDateFor(t *testing.T) {
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), *EndDateFor(plan.BillingMonthly, start))
	assert.Equal(t, time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC), *EndDateFor(plan.BillingAnnual, start))
	assert.Nil(t, EndDateFor(plan.BillingOneTime, start))
}

func TestDisplayStatus(t *testing.T) {
	tests := []struct {
		name     string
		contract *ydb.Contract
		want     string
	}{
		{"lifetime", contractEnding(nil), DisplayActive},
		{"ends later", contractEnding(at(time.Second)), DisplayActive},
		{"ends exactly now", contractEnding(at(0)), DisplayExpired},
		{"ended", contractEnding(at(-time.Hour)), DisplayExpired},
		{"cancelled", &ydb.Contract{Status: StatusCancelled, EndDate: at(24 * time.Hour)}, DisplayExpired},
		{"superseded lifetime", &ydb.Contract{Status: StatusSuperseded}, DisplayExpired},
		{"nil", nil, DisplayExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayStatus(tt.contract, now))
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		name   string
		end    *time.Time
		want   int
		wantOK bool
	}{
		{"lifetime", nil, 0, false},
		{"one second left", at(time.Second), 1, true},
		{"exactly one day", at(24 * time.Hour), 1, true},
		{"a day and a minute", at(24*time.Hour + time.Minute), 2, true},
		{"thirty days", at(30 * 24 * time.Hour), 30, true},
		{"ends now", at(0), 0, true},
		{"expired", at(-72 * time.Hour), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := DaysRemaining(contractEnding(tt.end), now)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, days)
		})
	}
}

func TestSessionTTL(t *testing.T) {
	def := 24 * time.Hour
	max := 30 * 24 * time.Hour

	assert.Equal(t, def, SessionTTL(nil, now, def, max))
	assert.Equal(t, def, SessionTTL([]*ydb.Contract{contractEnding(at(-time.Hour))}, now, def, max))

	assert.Equal(t, 10*24*time.Hour, SessionTTL([]*ydb.Contract{contractEnding(at(10 * 24 * time.Hour))}, now, def, max))
	assert.Equal(t, max, SessionTTL([]*ydb.Contract{contractEnding(at(90 * 24 * time.Hour))}, now, def, max))
	assert.Equal(t, time.Hour, SessionTTL([]*ydb.Contract{contractEnding(at(5 * time.Minute))}, now, def, max))
	assert.Equal(t, max, SessionTTL([]*ydb.Contract{contractEnding(at(2 * time.Hour)), contractEnding(nil)}, now, def, max))

	latest := SessionTTL([]*ydb.Contract{
		contractEnding(at(2 * 24 * time.Hour)),
		contractEnding(at(5 * 24 * time.Hour)),
	}, now, def, max)
	assert.Equal(t, 5*24*time.Hour, latest)

	assert.Equal(t, time.Hour, SessionTTL(nil, now, 2*time.Hour, time.Hour))
}
