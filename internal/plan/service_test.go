package plan

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/lumiforge/tierhub-backend/internal/cache"
	"github.com/lumiforge/tierhub-backend/internal/config"
	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/lumiforge/tierhub-backend/internal/models"
	"github.com/lumiforge/tierhub-backend/internal/ydb"
	ydbmocks "github.com/lumiforge/tierhub-backend/internal/ydb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalogRows() []*ydb.Plan {
	return []*ydb.Plan{
		{PlanID: "infinity", Name: "Infinity", Category: "membership", PlanType: "subscription", IsActive: true, SortOrder: 3,
			PricingJSON: `{"monthly":{"price":99,"currency":"USD"}}`},
		{PlanID: "basic", Name: "Basic", Category: "membership", PlanType: "subscription", IsActive: true, SortOrder: 1,
			PricingJSON: `{"monthly":{"price":0,"currency":"USD"}}`, FeaturesJSON: `["Newsletter"]`},
		{PlanID: "diamond", Name: "Diamond", Category: "membership", PlanType: "subscription", IsActive: true, SortOrder: 1,
			PricingJSON: `{"monthly":{"price":49,"currency":"USD"},"annual":{"price":470,"currency":"USD"}}`},
		{PlanID: "script", Name: "Script", Category: "advisory", PlanType: "one_time", IsActive: true, SortOrder: 4,
			PricingJSON: `{"oneTime":{"price":1999,"currency":"USD"}}`},
		{PlanID: "legacy", Name: "Legacy", Category: "membership", IsActive: false, SortOrder: 0},
	}
}

func ids(plans []*models.Plan) []string {
	out := make([]string, 0, len(plans))
	for _, p := range plans {
		out = append(out, p.ID)
	}
	return out
}

func TestListPlans_SortAndFilter(t *testing.T) {
	mockDB := new(ydbmocks.Database)
	ctx := context.Background()
	mockDB.On("GetAllPlans", ctx).Return(catalogRows(), nil)

	svc := NewService(mockDB, nil, nil)

	plans, err := svc.ListPlans(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"basic", "diamond", "infinity", "script"}, ids(plans))

	plans, err = svc.ListPlans(ctx, Filter{Category: "Advisory"})
	require.NoError(t, err)
	assert.Equal(t, []string{"script"}, ids(plans))

	plans, err = svc.ListPlans(ctx, Filter{IncludeInactive: true, PlanType: ""})
	require.NoError(t, err)
	assert.Equal(t, "legacy", plans[0].ID)
	assert.Equal(t, []string{"Newsletter"}, plans[1].Features)
}

func TestListPlans_UsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := cache.NewRedis(&config.Config{RedisAddr: mr.Addr()})
	mockDB := new(ydbmocks.Database)
	ctx := context.Background()
	mockDB.On("GetAllPlans", ctx).Return(catalogRows(), nil).Once()

	svc := NewService(mockDB, rc, nil)

	_, err := svc.ListPlans(ctx, Filter{})
	require.NoError(t, err)
	assert.True(t, mr.Exists(cacheKey))

	plans, err := svc.ListPlans(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, plans, 4)

	mockDB.AssertNumberOfCalls(t, "GetAllPlans", 1)
}

func TestListPlans_CacheFailureFallsBackToDB(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	mockDB := new(ydbmocks.Database)
	ctx := context.Background()
	mockDB.On("GetAllPlans", ctx).Return(catalogRows(), nil)

	redisMock.ExpectGet(cacheKey).SetErr(errors.New("connection refused"))
	redisMock.CustomMatch(func(expected, actual []interface{}) error { return nil }).
		ExpectSet(cacheKey, "", cacheTTL).SetErr(errors.New("connection refused"))

	svc := NewService(mockDB, &cache.RedisClient{Client: client}, nil)

	plans, err := svc.ListPlans(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, plans, 4)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestUpsertPlan_InvalidatesCache(t *testing.T) {
	client, redisMock := redismock.NewClientMock()
	mockDB := new(ydbmocks.Database)
	ctx := context.Background()

	mockDB.On("UpsertPlan", ctx, mock.MatchedBy(func(p *ydb.Plan) bool {
		return p.PlanID == "diamond" && p.PricingJSON == `{"monthly":{"price":49,"currency":"USD"}}` && p.FeaturesJSON == `[]`
	})).Return(nil)
	redisMock.ExpectDel(cacheKey).SetVal(1)

	svc := NewService(mockDB, &cache.RedisClient{Client: client}, nil)

	_, err := svc.UpsertPlan(ctx, &models.Plan{
		ID:       "diamond",
		Name:     "Diamond",
		Pricing:  models.PlanPricing{Monthly: &models.PriceOption{Price: 49}},
		IsActive: true,
	})
	require.NoError(t, err)
	assert.NoError(t, redisMock.ExpectationsWereMet())
	mockDB.AssertExpectations(t)
}

func TestUpsertPlan_Validation(t *testing.T) {
	svc := NewService(new(ydbmocks.Database), nil, nil)

	_, err := svc.UpsertPlan(context.Background(), &models.Plan{Name: "NoID"})
	assert.ErrorIs(t, err, app_errors.ErrValidation)

	_, err = svc.UpsertPlan(context.Background(), &models.Plan{
		ID: "x", Name: "X", Pricing: models.PlanPricing{Monthly: &models.PriceOption{Price: -1}},
	})
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}

func TestUpsertPlan_PaidPlanNeedsPaidTier(t *testing.T) {
	svc := NewService(new(ydbmocks.Database), nil, nil)

	_, err := svc.UpsertPlan(context.Background(), &models.Plan{
		ID: "gold", Name: "Gold", Pricing: models.PlanPricing{Monthly: &models.PriceOption{Price: 10}},
	})
	assert.ErrorIs(t, err, app_errors.ErrValidation)
	assert.Contains(t, err.Error(), "paid tier")
}

func TestGetPlan_InactiveIsNotFound(t *testing.T) {
	mockDB := new(ydbmocks.Database)
	ctx := context.Background()
	mockDB.On("GetPlanByID", ctx, "legacy").Return(catalogRows()[4], nil)

	_, err := NewService(mockDB, nil, nil).GetPlan(ctx, "legacy")
	assert.ErrorIs(t, err, app_errors.ErrPlanNotFound)
}

func TestBuildCart(t *testing.T) {
	mockDB := new(ydbmocks.Database)
	ctx := context.Background()
	rows := catalogRows()
	mockDB.On("GetPlanByID", ctx, "diamond").Return(rows[2], nil)
	mockDB.On("GetPlanByID", ctx, "legacy").Return(rows[4], nil)
	mockDB.On("GetPlanByID", ctx, "missing").Return(nil, app_errors.ErrPlanNotFound)

	svc := NewService(mockDB, nil, nil)

	cart, err := svc.BuildCart(ctx, "diamond", BillingAnnual)
	require.NoError(t, err)
	assert.Equal(t, &models.Cart{
		PlanID:       "diamond",
		PlanName:     "Diamond",
		Tier:         "Diamond",
		BillingCycle: BillingAnnual,
		Amount:       470,
		Currency:     "USD",
		DisplayPrice: "$470/year",
	}, cart)

	_, err = svc.BuildCart(ctx, "diamond", BillingOneTime)
	assert.ErrorIs(t, err, app_errors.ErrBillingCycleNotPriced)

	_, err = svc.BuildCart(ctx, "diamond", "weekly")
	assert.ErrorIs(t, err, app_errors.ErrValidation)

	_, err = svc.BuildCart(ctx, "legacy", BillingMonthly)
	assert.ErrorIs(t, err, app_errors.ErrPlanInactive)

	_, err = svc.BuildCart(ctx, "missing", BillingMonthly)
	assert.ErrorIs(t, err, app_errors.ErrPlanNotFound)
}
