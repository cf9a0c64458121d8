// Package content serves the tier-gated content hub and the legal pages.
package content

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/lumiforge/tierhub-backend/internal/tier"
)

// Item is one entry of the content hub.
type Item struct {
	ID           string            `yaml:"id"`
	Title        string            `yaml:"title"`
	Summary      string            `yaml:"summary"`
	Category     string            `yaml:"category"`
	RequiredTier string            `yaml:"required_tier"`
	Body         string            `yaml:"body"`
	Variants     map[string]string `yaml:"variants"`
	MediaURL     string            `yaml:"media_url"`

	required tier.Tier
	variants map[tier.Tier]string
}

// LegalPage is a public disclosure page.
type LegalPage struct {
	Slug      string `yaml:"slug"`
	Title     string `yaml:"title"`
	UpdatedAt string `yaml:"updated_at"`
	Body      string `yaml:"body"`
}

// Catalog is immutable once loaded.
type Catalog struct {
	Items []*Item      `yaml:"items"`
	Legal []*LegalPage `yaml:"legal"`

	byID   map[string]*Item
	bySlug map[string]*LegalPage
}

// ParseCatalogYAML decodes and validates a catalogue.
func ParseCatalogYAML(data []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: catalog payload is empty", app_errors.ErrFailedToLoadContent)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", app_errors.ErrFailedToLoadContent, err)
	}
	if err := c.normalize(); err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrFailedToLoadContent, err)
	}
	return &c, nil
}

// LoadCatalogFile loads a catalogue from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", app_errors.ErrFailedToLoadContent, path, err)
	}
	return ParseCatalogYAML(data)
}

// parseTier is stricter than tier.Parse: a typo in the catalogue must not silently open content.
func parseTier(value string) (tier.Tier, error) {
	if strings.TrimSpace(value) == "" {
		return tier.None, nil
	}
	t := tier.Parse(value)
	if t == tier.None && !strings.EqualFold(strings.TrimSpace(value), tier.None.String()) {
		return "", fmt.Errorf("unknown tier %q", value)
	}
	return t, nil
}

func (c *Catalog) normalize() error {
	c.byID = make(map[string]*Item, len(c.Items))
	for i, item := range c.Items {
		if item == nil || strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("item %d: id is required", i)
		}
		if _, dup := c.byID[item.ID]; dup {
			return fmt.Errorf("item %s: duplicate id", item.ID)
		}
		if item.Title == "" {
			return fmt.Errorf("item %s: title is required", item.ID)
		}

		required, err := parseTier(item.RequiredTier)
		if err != nil {
			return fmt.Errorf("item %s: %v", item.ID, err)
		}
		item.required = required

		item.variants = make(map[tier.Tier]string, len(item.Variants))
		for key, body := range item.Variants {
			vt, err := parseTier(key)
			if err != nil {
				return fmt.Errorf("item %s variant: %v", item.ID, err)
			}
			item.variants[vt] = body
		}
		c.byID[item.ID] = item
	}

	c.bySlug = make(map[string]*LegalPage, len(c.Legal))
	for i, page := range c.Legal {
		if page == nil || strings.TrimSpace(page.Slug) == "" {
			return fmt.Errorf("legal page %d: slug is required", i)
		}
		if _, dup := c.bySlug[page.Slug]; dup {
			return fmt.Errorf("legal page %s: duplicate slug", page.Slug)
		}
		c.bySlug[page.Slug] = page
	}
	return nil
}

// Required returns the tier an item is gated at.
func (i *Item) Required() tier.Tier {
	return i.required
}

// ResolveBody picks the body for a viewer: the exact tier variant, else the
// highest variant the viewer can access, else the base body.
func (i *Item) ResolveBody(viewer tier.Tier) (string, tier.Tier) {
	if body, ok := i.variants[viewer]; ok && viewer.IsKnown() {
		return body, viewer
	}
	accessible := tier.Accessible(viewer)
	for k := len(accessible) - 1; k >= 0; k-- {
		if body, ok := i.variants[accessible[k]]; ok {
			return body, accessible[k]
		}
	}
	return i.Body, ""
}
