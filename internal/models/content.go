package models

// ContentCard represents a content item in a listing
// @Description	Content card
type ContentCard struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Summary      string `json:"summary"`
	Category     string `json:"category"`
	RequiredTier string `json:"required_tier"`
	Locked       bool   `json:"locked"`
}

// Upsell describes what the viewer needs to unlock an item
// @Description	Upsell panel for locked content
type Upsell struct {
	RequiredTier string `json:"required_tier"`
	Message      string `json:"message"`
	CTAPath      string `json:"cta_path"`
}

// ContentDetails represents a single content item as seen by the viewer
// @Description	Content item
type ContentDetails struct {
	ContentCard
	Body     string  `json:"body,omitempty"`
	Variant  string  `json:"variant,omitempty"`
	MediaURL string  `json:"media_url,omitempty"`
	Upsell   *Upsell `json:"upsell,omitempty"`
}

// ListContentResponse represents the content hub listing
// @Description	Content listing
type ListContentResponse struct {
	Items []*ContentCard `json:"items"`
}

// LegalPage represents a legal disclosure page
// @Description	Legal page
type LegalPage struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	UpdatedAt string `json:"updated_at"`
	Body      string `json:"body,omitempty"`
}

// ListLegalResponse represents the legal pages listing
// @Description	Legal pages
type ListLegalResponse struct {
	Pages []*LegalPage `json:"pages"`
}
