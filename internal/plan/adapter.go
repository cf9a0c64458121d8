package plan

import (
	"fmt"
	"math"

	"github.com/lumiforge/tierhub-backend/internal/models"
	"github.com/lumiforge/tierhub-backend/internal/tier"
)

const (
	BillingMonthly = "monthly"
	BillingAnnual  = "annual"
	BillingOneTime = "one_time"
)

const badgePopular = "Most Popular"

type appearance struct {
	Icon     string
	Gradient string
}

var appearances = map[tier.Tier]appearance{
	tier.None:     {Icon: "sparkles", Gradient: "from-slate-500 to-slate-700"},
	tier.Basic:    {Icon: "star", Gradient: "from-blue-500 to-cyan-500"},
	tier.Diamond:  {Icon: "gem", Gradient: "from-purple-500 to-pink-500"},
	tier.Infinity: {Icon: "infinity", Gradient: "from-amber-500 to-orange-600"},
	tier.Script:   {Icon: "scroll", Gradient: "from-emerald-500 to-teal-600"},
}

var defaultAppearance = appearance{Icon: "package", Gradient: "from-gray-500 to-gray-700"}

// TierOf maps a plan onto the tier it grants. The plan name is matched case-insensitively.
func TierOf(p models.Plan) tier.Tier {
	return tier.Parse(p.Name)
}

// SelectPrice returns the price option for the billing toggle and the period it is quoted in.
// A plan without the requested option falls back to its one-time price.
func SelectPrice(p models.Plan, annual bool) (*models.PriceOption, string) {
	if annual && p.Pricing.Annual != nil {
		return p.Pricing.Annual, "year"
	}
	if !annual && p.Pricing.Monthly != nil {
		return p.Pricing.Monthly, "month"
	}
	if p.Pricing.OneTime != nil {
		return p.Pricing.OneTime, "lifetime"
	}
	return nil, ""
}

// FormatPrice renders "Free" for zero or missing prices and "$N/period" otherwise.
func FormatPrice(opt *models.PriceOption, period string) string {
	if opt == nil || opt.Price == 0 {
		return "Free"
	}
	return fmt.Sprintf("$%s/%s", formatAmount(opt.Price), period)
}

func formatAmount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// ToView converts a catalogue plan into the model shown on the pricing page.
// The input plan is not modified.
func ToView(p models.Plan, annual bool) models.PlanView {
	opt, period := SelectPrice(p, annual)

	var original *float64
	if opt != nil {
		switch {
		case opt.OriginalPrice != nil:
			v := *opt.OriginalPrice
			original = &v
		case period == "year" && p.Pricing.Monthly != nil:
			v := p.Pricing.Monthly.Price * 12
			original = &v
		}
	}

	var discount *int
	if opt != nil && original != nil && *original > 0 && *original > opt.Price {
		d := int(math.Round((*original - opt.Price) / *original * 100))
		discount = &d
	}

	look, ok := appearances[TierOf(p)]
	if !ok {
		look = defaultAppearance
	}

	badge := ""
	switch {
	case p.IsPopular:
		badge = badgePopular
	case discount != nil:
		badge = fmt.Sprintf("Save %d%%", *discount)
	}

	features := make([]string, len(p.Features))
	copy(features, p.Features)

	name := p.DisplayName
	if name == "" {
		name = p.Name
	}

	return models.PlanView{
		ID:              p.ID,
		Name:            name,
		Description:     p.Description,
		Price:           FormatPrice(opt, period),
		OriginalPrice:   original,
		DiscountPercent: discount,
		Features:        features,
		Icon:            look.Icon,
		Gradient:        look.Gradient,
		Badge:           badge,
		IsPopular:       p.IsPopular,
	}
}
