package models

// ContractView represents a subscription contract with derived fields
// @Description	Subscription contract
type ContractView struct {
	ContractID    string `json:"contract_id"`
	PlanID        string `json:"plan_id"`
	ProductType   string `json:"product_type"`
	BillingCycle  string `json:"billing_cycle"`
	Status        string `json:"status" enums:"active,expired"`
	StartDate     int64  `json:"start_date"`
	EndDate       *int64 `json:"end_date,omitempty"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
}

// GetSubscriptionResponse represents the current subscription of a user
// @Description	Current tier and contracts
type GetSubscriptionResponse struct {
	Subscription string          `json:"subscription"`
	Contracts    []*ContractView `json:"contracts"`
}

// ActivateSubscriptionRequest represents a self-service activation
// @Description	Activate a plan for the signed-in user
type ActivateSubscriptionRequest struct {
	PlanID       string `json:"plan_id" validate:"required"`
	BillingCycle string `json:"billing_cycle" validate:"required" enums:"monthly,annual,one_time"`
}

// AdminActivateSubscriptionRequest represents an activation after external payment
// @Description	Activate a plan for a user
type AdminActivateSubscriptionRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	PlanID       string `json:"plan_id" validate:"required"`
	BillingCycle string `json:"billing_cycle" validate:"required" enums:"monthly,annual,one_time"`
}

// ActivateSubscriptionResponse represents the created contract
// @Description	Activation result
type ActivateSubscriptionResponse struct {
	Subscription string        `json:"subscription"`
	Contract     *ContractView `json:"contract"`
}
