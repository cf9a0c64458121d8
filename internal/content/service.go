package content

import (
	"context"
	"fmt"
	"sort"
	"strings"

	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/lumiforge/tierhub-backend/internal/metrics"
	"github.com/lumiforge/tierhub-backend/internal/models"
	"github.com/lumiforge/tierhub-backend/internal/tier"
)

const upgradePath = "/plans"

// TierSource resolves the tier a user is entitled to right now.
type TierSource interface {
	CurrentTier(ctx context.Context, userID string) (tier.Tier, error)
}

// Service gates catalogue items by the viewer's subscription tier.
type Service struct {
	catalog *Catalog
	tiers   TierSource
}

func NewService(catalog *Catalog, tiers TierSource) *Service {
	return &Service{catalog: catalog, tiers: tiers}
}

// ViewerTier resolves the viewer's tier from their active contracts. The token
// carries no tier, so activations and expiries take effect without re-login.
func (s *Service) ViewerTier(ctx context.Context, userID string) (tier.Tier, error) {
	return s.tiers.CurrentTier(ctx, userID)
}

// List returns cards for all items in a category (all categories when empty).
func (s *Service) List(viewer tier.Tier, category string) []*models.ContentCard {
	cards := make([]*models.ContentCard, 0, len(s.catalog.Items))
	for _, item := range s.catalog.Items {
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		cards = append(cards, card(item, viewer))
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return tier.Parse(cards[i].RequiredTier).Rank() < tier.Parse(cards[j].RequiredTier).Rank()
	})
	return cards
}

// Get returns an item. Locked items come back without a body and with an upsell.
func (s *Service) Get(id string, viewer tier.Tier) (*models.ContentDetails, error) {
	item, ok := s.catalog.byID[id]
	if !ok {
		return nil, fmt.Errorf("content %w", app_errors.ErrNotFound)
	}

	details := &models.ContentDetails{ContentCard: *card(item, viewer)}
	if details.Locked {
		metrics.ContentViews.WithLabelValues("locked").Inc()
		details.Upsell = &models.Upsell{
			RequiredTier: item.Required().String(),
			Message:      fmt.Sprintf("Upgrade to %s to unlock this content.", item.Required()),
			CTAPath:      upgradePath + "?tier=" + strings.ToLower(item.Required().String()),
		}
		return details, nil
	}

	metrics.ContentViews.WithLabelValues("unlocked").Inc()
	body, variant := item.ResolveBody(viewer)
	details.Body = body
	details.Variant = variant.String()
	details.MediaURL = item.MediaURL
	return details, nil
}

// ListLegal returns all legal pages without bodies.
func (s *Service) ListLegal() []*models.LegalPage {
	pages := make([]*models.LegalPage, 0, len(s.catalog.Legal))
	for _, p := range s.catalog.Legal {
		pages = append(pages, &models.LegalPage{Slug: p.Slug, Title: p.Title, UpdatedAt: p.UpdatedAt})
	}
	return pages
}

// GetLegal returns a legal page by slug.
func (s *Service) GetLegal(slug string) (*models.LegalPage, error) {
	p, ok := s.catalog.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("legal page %w", app_errors.ErrNotFound)
	}
	return &models.LegalPage{Slug: p.Slug, Title: p.Title, UpdatedAt: p.UpdatedAt, Body: p.Body}, nil
}

func card(item *Item, viewer tier.Tier) *models.ContentCard {
	return &models.ContentCard{
		ID:           item.ID,
		Title:        item.Title,
		Summary:      item.Summary,
		Category:     item.Category,
		RequiredTier: item.Required().String(),
		Locked:       !tier.HasAccess(viewer, item.Required()),
	}
}
