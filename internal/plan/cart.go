package plan

import (
	"context"
	"fmt"

	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/lumiforge/tierhub-backend/internal/models"
)

// PriceFor returns the option matching a billing cycle exactly, without fallbacks.
func PriceFor(p models.Plan, billingCycle string) (*models.PriceOption, string, error) {
	switch billingCycle {
	case BillingMonthly:
		return p.Pricing.Monthly, "month", nil
	case BillingAnnual:
		return p.Pricing.Annual, "year", nil
	case BillingOneTime:
		return p.Pricing.OneTime, "lifetime", nil
	default:
		return nil, "", fmt.Errorf("%w: unknown billing cycle %q", app_errors.ErrValidation, billingCycle)
	}
}

// BuildCart prepares the checkout handoff for a plan and billing cycle.
func (s *Service) BuildCart(ctx context.Context, planID, billingCycle string) (*models.Cart, error) {
	if planID == "" {
		return nil, fmt.Errorf("%w: plan_id is required", app_errors.ErrValidation)
	}

	p, err := s.getPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, app_errors.ErrPlanInactive
	}

	opt, period, err := PriceFor(*p, billingCycle)
	if err != nil {
		return nil, err
	}
	if opt == nil {
		return nil, app_errors.ErrBillingCycleNotPriced
	}

	currency := opt.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	return &models.Cart{
		PlanID:       p.ID,
		PlanName:     p.DisplayName,
		Tier:         TierOf(*p).String(),
		BillingCycle: billingCycle,
		Amount:       opt.Price,
		Currency:     currency,
		DisplayPrice: FormatPrice(opt, period),
	}, nil
}
