package content

import (
	"os"
	"path/filepath"
	"testing"

	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/lumiforge/tierhub-backend/internal/tier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
items:
  - id: welcome
    title: Welcome
    summary: Start here
    category: basics
    body: Hello everyone
  - id: budgeting
    title: Budgeting 101
    category: basics
    required_tier: basic
    body: base budgeting
  - id: portfolio
    title: Portfolio review
    category: investing
    required_tier: Diamond
    body: base portfolio
    media_url: https://cdn.example/portfolio.mp4
    variants:
      Diamond: diamond portfolio
      Script: script portfolio
legal:
  - slug: terms
    title: Terms of Service
    updated_at: "2026-01-01"
    body: terms body
  - slug: privacy
    title: Privacy Policy
    updated_at: "2026-01-01"
    body: privacy body
`

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := ParseCatalogYAML([]byte(testCatalog))
	require.NoError(t, err)
	return c
}

func TestParseCatalogYAML(t *testing.T) {
	c := mustCatalog(t)
	require.Len(t, c.Items, 3)
	assert.Equal(t, tier.None, c.byID["welcome"].Required())
	assert.Equal(t, tier.Basic, c.byID["budgeting"].Required())
	assert.Len(t, c.bySlug, 2)
}

func TestParseCatalogYAML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "   "},
		{"broken yaml", "items: ["},
		{"missing id", "items:\n  - title: x\n"},
		{"duplicate id", "items:\n  - {id: a, title: x}\n  - {id: a, title: y}\n"},
		{"unknown tier", "items:\n  - {id: a, title: x, required_tier: Gold}\n"},
		{"unknown variant", "items:\n  - id: a\n    title: x\n    variants: {Platinum: y}\n"},
		{"duplicate slug", "legal:\n  - {slug: terms}\n  - {slug: terms}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalogYAML([]byte(tt.yaml))
			assert.ErrorIs(t, err, app_errors.ErrFailedToLoadContent)
		})
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Len(t, c.Items, 3)

	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, app_errors.ErrFailedToLoadContent)
}

func TestItem_ResolveBody(t *testing.T) {
	item := mustCatalog(t).byID["portfolio"]

	tests := []struct {
		viewer      tier.Tier
		wantBody    string
		wantVariant tier.Tier
	}{
		{tier.Diamond, "diamond portfolio", tier.Diamond},
		{tier.Infinity, "diamond portfolio", tier.Diamond},
		{tier.Script, "script portfolio", tier.Script},
		{tier.Basic, "base portfolio", ""},
	}

	for _, tt := range tests {
		t.Run(tt.viewer.String(), func(t *testing.T) {
			body, variant := item.ResolveBody(tt.viewer)
			assert.Equal(t, tt.wantBody, body)
			assert.Equal(t, tt.wantVariant, variant)
		})
	}
}

func TestLoadCatalogFile_ShippedCatalog(t *testing.T) {
	c, err := LoadCatalogFile(filepath.Join("..", "..", "content", "catalog.yaml"))
	require.NoError(t, err)

	assert.NotEmpty(t, c.Items)
	for _, slug := range []string{"terms", "privacy", "disclosures"} {
		assert.Contains(t, c.bySlug, slug)
	}
	for _, item := range c.Items {
		assert.True(t, item.Required().IsKnown(), item.ID)
	}
}
