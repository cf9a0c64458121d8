package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/lumiforge/tierhub-backend/internal/audit"
	"github.com/lumiforge/tierhub-backend/internal/email"
	emailmocks "github.com/lumiforge/tierhub-backend/internal/email/mocks"
	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/lumiforge/tierhub-backend/internal/plan"
	"github.com/lumiforge/tierhub-backend/internal/tier"
	"github.com/lumiforge/tierhub-backend/internal/ydb"
	ydbmocks "github.com/lumiforge/tierhub-backend/internal/ydb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupService() (*Service, *ydbmocks.Database, *emailmocks.Mailer) {
	mockDB := new(ydbmocks.Database)
	mailer := new(emailmocks.Mailer)
	svc := NewService(mockDB, plan.NewService(mockDB, nil, nil), mailer, audit.NewService(mockDB, nil), nil)
	svc.now = func() time.Time { return now }
	return svc, mockDB, mailer
}

var (
	freePlan = &ydb.Plan{PlanID: "basic-free", Name: "Basic", IsActive: true, PlanType: "subscription",
		PricingJSON: `{"monthly":{"price":0,"currency":"USD"}}`}
	diamondPlan = &ydb.Plan{PlanID: "diamond", Name: "Diamond", IsActive: true, PlanType: "subscription",
		PricingJSON: `{"monthly":{"price":49,"currency":"USD"},"annual":{"price":470,"currency":"USD"}}`}
	scriptPlan = &ydb.Plan{PlanID: "script", Name: "Script", IsActive: true, PlanType: "one_time",
		PricingJSON: `{"oneTime":{"price":1999,"currency":"USD"}}`}
)

func TestActivate_FreePlanSelfService(t *testing.T) {
	svc, mockDB, mailer := setupService()
	ctx := context.Background()

	mockDB.On("GetPlanByID", ctx, "basic-free").Return(freePlan, nil)
	mockDB.On("GetUserByID", ctx, "u1").Return(&ydb.User{UserID: "u1", Email: "a@example.com", FirstName: "Ann", Subscription: "None"}, nil)
	mockDB.On("GetContractsByUser", ctx, "u1").Return([]*ydb.Contract{}, nil)
	mockDB.On("CreateContract", ctx, mock.MatchedBy(func(c *ydb.Contract) bool {
		return c.UserID == "u1" && c.Status == StatusActive && c.EndDate != nil && c.EndDate.Equal(now.AddDate(0, 1, 0))
	})).Return(nil)
	mockDB.On("CreateSubscriptionHistory", ctx, mock.MatchedBy(func(h *ydb.SubscriptionHistory) bool {
		return h.Tier == "Basic" && h.EventType == "activated"
	})).Return(nil)
	mockDB.On("UpdateUser", ctx, mock.MatchedBy(func(u *ydb.User) bool { return u.Subscription == "Basic" })).Return(nil)
	mockDB.On("CreateAuditLog", ctx, mock.Anything).Return(nil)
	mailer.On("IsConfigured").Return(false)

	resp, err := svc.Activate(ctx, "u1", "basic-free", plan.BillingMonthly, ActivateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Basic", resp.Subscription)
	assert.Equal(t, DisplayActive, resp.Contract.Status)
	require.NotNil(t, resp.Contract.DaysRemaining)
	assert.Equal(t, 31, *resp.Contract.DaysRemaining)

	mockDB.AssertExpectations(t)
}

func TestActivate_PaidPlanRequiresPayment(t *testing.T) {
	svc, mockDB, _ := setupService()
	ctx := context.Background()
	mockDB.On("GetPlanByID", ctx, "diamond").Return(diamondPlan, nil)

	_, err := svc.Activate(ctx, "u1", "diamond", plan.BillingAnnual, ActivateOptions{})
	assert.ErrorIs(t, err, app_errors.ErrPaymentRequired)
	mockDB.AssertNotCalled(t, "CreateContract", mock.Anything, mock.Anything)
}

func TestActivate_LifetimeSupersedesAndEmails(t *testing.T) {
	svc, mockDB, mailer := setupService()
	ctx := context.Background()
	oldEnd := now.Add(10 * 24 * time.Hour)
	old := &ydb.Contract{ContractID: "old", UserID: "u1", Status: StatusActive, StartDate: now.AddDate(0, -1, 0), EndDate: &oldEnd}

	mockDB.On("GetPlanByID", ctx, "script").Return(scriptPlan, nil)
	mockDB.On("GetUserByID", ctx, "u1").Return(&ydb.User{UserID: "u1", Email: "a@example.com", FirstName: "Ann", Subscription: "Diamond"}, nil)
	mockDB.On("GetContractsByUser", ctx, "u1").Return([]*ydb.Contract{old}, nil)
	mockDB.On("CreateContract", ctx, mock.MatchedBy(func(c *ydb.Contract) bool {
		return c.EndDate == nil && c.ProductType == "one_time"
	})).Return(nil)
	mockDB.On("UpdateContract", ctx, mock.MatchedBy(func(c *ydb.Contract) bool {
		return c.ContractID == "old" && c.Status == StatusSuperseded
	})).Return(nil)
	mockDB.On("CreateSubscriptionHistory", ctx, mock.Anything).Return(nil)
	mockDB.On("UpdateUser", ctx, mock.MatchedBy(func(u *ydb.User) bool { return u.Subscription == "Script" })).Return(nil)
	mockDB.On("CreateAuditLog", ctx, mock.Anything).Return(nil)
	mockDB.On("CreateEmailLog", ctx, mock.MatchedBy(func(l *ydb.EmailLog) bool { return l.MessageID == "m1" })).Return(nil)
	mailer.On("IsConfigured").Return(true)
	mailer.On("SendSubscriptionEmail", ctx, "a@example.com", "Ann", "Script", (*time.Time)(nil)).
		Return(&email.EmailMessage{Type: email.EmailTypeSubscription, Recipient: "a@example.com", Status: email.EmailStatusSent, MessageID: "m1"}, nil)

	resp, err := svc.Activate(ctx, "u1", "script", plan.BillingOneTime, ActivateOptions{PaymentConfirmed: true, ActorID: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, "Script", resp.Subscription)
	assert.Nil(t, resp.Contract.EndDate)
	assert.Nil(t, resp.Contract.DaysRemaining)

	mockDB.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestActivate_UnpricedCycle(t *testing.T) {
	svc, mockDB, _ := setupService()
	ctx := context.Background()
	mockDB.On("GetPlanByID", ctx, "script").Return(scriptPlan, nil)

	_, err := svc.Activate(ctx, "u1", "script", plan.BillingMonthly, ActivateOptions{PaymentConfirmed: true})
	assert.ErrorIs(t, err, app_errors.ErrBillingCycleNotPriced)
}

func TestListContracts_NewestFirst(t *testing.T) {
	svc, mockDB, _ := setupService()
	ctx := context.Background()
	end := now.Add(-24 * time.Hour)

	mockDB.On("GetContractsByUser", ctx, "u1").Return([]*ydb.Contract{
		{ContractID: "older", Status: StatusActive, StartDate: now.AddDate(0, -2, 0), EndDate: &end},
		{ContractID: "newer", Status: StatusActive, StartDate: now.AddDate(0, 0, -1)},
	}, nil)

	views, err := svc.ListContracts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "newer", views[0].ContractID)
	assert.Equal(t, DisplayActive, views[0].Status)
	assert.Equal(t, DisplayExpired, views[1].Status)
	assert.Equal(t, 0, *views[1].DaysRemaining)
}

func TestSessionTTLFor_DBErrorUsesDefault(t *testing.T) {
	svc, mockDB, _ := setupService()
	ctx := context.Background()
	mockDB.On("GetContractsByUser", ctx, "u1").Return(nil, assert.AnError)

	assert.Equal(t, 24*time.Hour, svc.SessionTTLFor(ctx, "u1", 24*time.Hour, 30*24*time.Hour))
}

func TestActivate_FreePlanKeepsHigherPaidContract(t *testing.T) {
	svc, mockDB, _ := setupService()
	ctx := context.Background()
	end := now.AddDate(0, 6, 0)
	paid := &ydb.Contract{ContractID: "paid", UserID: "u1", PlanID: "diamond", Tier: "Diamond", Status: StatusActive,
		StartDate: now.AddDate(0, -6, 0), EndDate: &end}

	mockDB.On("GetPlanByID", ctx, "basic-free").Return(freePlan, nil)
	mockDB.On("GetUserByID", ctx, "u1").Return(&ydb.User{UserID: "u1", Subscription: "Diamond"}, nil)
	mockDB.On("GetContractsByUser", ctx, "u1").Return([]*ydb.Contract{paid}, nil)

	_, err := svc.Activate(ctx, "u1", "basic-free", plan.BillingMonthly, ActivateOptions{})
	assert.ErrorIs(t, err, app_errors.ErrHigherTierActive)
	assert.Equal(t, StatusActive, paid.Status)
	mockDB.AssertNotCalled(t, "CreateContract", mock.Anything, mock.Anything)
	mockDB.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestActivate_UserUpdateFailureCancelsNewContract(t *testing.T) {
	svc, mockDB, _ := setupService()
	ctx := context.Background()
	oldEnd := now.Add(5 * 24 * time.Hour)
	old := &ydb.Contract{ContractID: "old", UserID: "u1", Tier: "Basic", Status: StatusActive,
		StartDate: now.AddDate(0, -1, 0), EndDate: &oldEnd}

	mockDB.On("GetPlanByID", ctx, "basic-free").Return(freePlan, nil)
	mockDB.On("GetUserByID", ctx, "u1").Return(&ydb.User{UserID: "u1", Subscription: "Basic"}, nil)
	mockDB.On("GetContractsByUser", ctx, "u1").Return([]*ydb.Contract{old}, nil)
	mockDB.On("CreateContract", ctx, mock.Anything).Return(nil)
	mockDB.On("UpdateUser", ctx, mock.Anything).Return(assert.AnError)
	mockDB.On("UpdateContract", ctx, mock.MatchedBy(func(c *ydb.Contract) bool {
		return c.ContractID != "old" && c.Status == StatusCancelled
	})).Return(nil).Once()

	_, err := svc.Activate(ctx, "u1", "basic-free", plan.BillingMonthly, ActivateOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)

	assert.Equal(t, StatusActive, old.Status)
	mockDB.AssertExpectations(t)
	mockDB.AssertNotCalled(t, "CreateSubscriptionHistory", mock.Anything, mock.Anything)
}

func TestCurrentTier_ExpiredContractDowngradesStoredTier(t *testing.T) {
	svc, mockDB, _ := setupService()
	ctx := context.Background()
	ended := now.Add(-24 * time.Hour)

	mockDB.On("GetUserByID", ctx, "u1").Return(&ydb.User{UserID: "u1", Subscription: "Diamond"}, nil)
	mockDB.On("GetContractsByUser", ctx, "u1").Return([]*ydb.Contract{
		{ContractID: "d1", UserID: "u1", PlanID: "diamond", Tier: "Diamond", Status: StatusActive,
			StartDate: now.AddDate(0, -1, 0), EndDate: &ended},
	}, nil)
	mockDB.On("UpdateUser", ctx, mock.MatchedBy(func(u *ydb.User) bool { return u.Subscription == "None" })).Return(nil)
	mockDB.On("CreateSubscriptionHistory", ctx, mock.MatchedBy(func(h *ydb.SubscriptionHistory) bool {
		return h.EventType == "expired" && h.Tier == "None"
	})).Return(nil)

	got, err := svc.CurrentTier(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, tier.None, got)
	mockDB.AssertExpectations(t)
}

func TestCurrentTier_HighestActiveContractWins(t *testing.T) {
	svc, mockDB, _ := setupService()
	ctx := context.Background()
	end := now.AddDate(0, 1, 0)

	mockDB.On("GetUserByID", ctx, "u1").Return(&ydb.User{UserID: "u1", Subscription: "Diamond"}, nil)
	mockDB.On("GetContractsByUser", ctx, "u1").Return([]*ydb.Contract{
		{ContractID: "b1", Tier: "Basic", Status: StatusActive, StartDate: now, EndDate: &end},
		// запись без уровня: он берется из плана
		{ContractID: "d1", PlanID: "diamond", Status: StatusActive, StartDate: now.AddDate(0, -1, 0), EndDate: &end},
		{ContractID: "i1", Tier: "Infinity", Status: StatusSuperseded, StartDate: now.AddDate(-1, 0, 0)},
	}, nil)
	mockDB.On("GetPlanByID", ctx, "diamond").Return(diamondPlan, nil)

	got, err := svc.CurrentTier(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, tier.Diamond, got)
	mockDB.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestGetSubscription_ReportsEffectiveTier(t *testing.T) {
	svc, mockDB, _ := setupService()
	ctx := context.Background()

	mockDB.On("GetUserByID", ctx, "u1").Return(&ydb.User{UserID: "u1", Subscription: "Infinity"}, nil)
	mockDB.On("GetContractsByUser", ctx, "u1").Return([]*ydb.Contract{}, nil)
	mockDB.On("UpdateUser", ctx, mock.Anything).Return(nil)
	mockDB.On("CreateSubscriptionHistory", ctx, mock.Anything).Return(nil)

	resp, err := svc.GetSubscription(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "None", resp.Subscription)
	assert.Empty(t, resp.Contracts)
}
