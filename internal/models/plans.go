package models

// PriceOption is one way a plan can be paid for
// @Description	Price for a billing option
type PriceOption struct {
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Currency      string   `json:"currency"`
}

// PlanPricing groups the billing options of a plan. Any option may be absent.
// @Description	Plan pricing per billing cycle
type PlanPricing struct {
	Monthly *PriceOption `json:"monthly,omitempty"`
	Annual  *PriceOption `json:"annual,omitempty"`
	OneTime *PriceOption `json:"oneTime,omitempty"`
}

// Plan is a purchasable subscription product
// @Description	Subscription plan as stored in the catalogue
type Plan struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	DisplayName string      `json:"displayName"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	PlanType    string      `json:"planType"`
	Pricing     PlanPricing `json:"pricing"`
	Features    []string    `json:"features"`
	IsActive    bool        `json:"isActive"`
	IsPopular   bool        `json:"isPopular"`
	SortOrder   int         `json:"sortOrder"`
}

// PlanView is the presentation model of a plan
// @Description	Plan prepared for the pricing page
type PlanView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           string   `json:"price"`
	OriginalPrice   *float64 `json:"originalPrice"`
	DiscountPercent *int     `json:"discountPercent"`
	Features        []string `json:"features"`
	Icon            string   `json:"icon"`
	Gradient        string   `json:"gradient"`
	Badge           string   `json:"badge,omitempty"`
	IsPopular       bool     `json:"isPopular"`
}

// ListPlansResponse represents the plans listing
// @Description	Plans listing with the selected billing cycle
type ListPlansResponse struct {
	Billing string      `json:"billing"`
	Plans   []*PlanView `json:"plans"`
}

// PlanDetailsResponse represents a single plan with its view model
// @Description	Plan details
type PlanDetailsResponse struct {
	Plan *Plan     `json:"plan"`
	View *PlanView `json:"view"`
}

// UpsertPlanRequest represents an admin plan upsert
// @Description	Create or replace a plan
type UpsertPlanRequest struct {
	Plan
}

// CartRequest represents a checkout cart request
// @Description	Checkout cart request
type CartRequest struct {
	PlanID       string `json:"plan_id" validate:"required"`
	BillingCycle string `json:"billing_cycle" validate:"required" enums:"monthly,annual,one_time"`
}

// Cart is the checkout handoff object
// @Description	Checkout cart
type Cart struct {
	PlanID       string  `json:"plan_id"`
	PlanName     string  `json:"plan_name"`
	Tier         string  `json:"tier"`
	BillingCycle string  `json:"billing_cycle"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	DisplayPrice string  `json:"display_price"`
}
