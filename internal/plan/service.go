package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/lumiforge/tierhub-backend/internal/cache"
	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/lumiforge/tierhub-backend/internal/metrics"
	"github.com/lumiforge/tierhub-backend/internal/models"
	"github.com/lumiforge/tierhub-backend/internal/tier"
	"github.com/lumiforge/tierhub-backend/internal/ydb"
)

const (
	cacheKey        = "plans:all"
	cacheTTL        = 5 * time.Minute
	defaultCurrency = "USD"
)

// Filter ограничивает выдачу каталога
type Filter struct {
	Category        string
	PlanType        string
	IncludeInactive bool
}

// Service реализует бизнес-логику для тарифных планов
type Service struct {
	db    ydb.Database
	cache *cache.RedisClient
	log   *slog.Logger
}

// NewService создает новый plan сервис. cache может быть nil.
func NewService(db ydb.Database, c *cache.RedisClient, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		db:    db,
		cache: c,
		log:   log,
	}
}

// ListPlans возвращает каталог, отсортированный по sortOrder, затем по имени
func (s *Service) ListPlans(ctx context.Context, filter Filter) ([]*models.Plan, error) {
	plans, err := s.allPlans(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*models.Plan, 0, len(plans))
	for _, p := range plans {
		if !p.IsActive && !filter.IncludeInactive {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		if filter.PlanType != "" && !strings.EqualFold(p.PlanType, filter.PlanType) {
			continue
		}
		result = append(result, p)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// GetPlan возвращает активный план по ID
func (s *Service) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	p, err := s.getPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, app_errors.ErrPlanNotFound
	}
	return p, nil
}

// GetPlanAnyState возвращает план независимо от активности
func (s *Service) GetPlanAnyState(ctx context.Context, planID string) (*models.Plan, error) {
	return s.getPlan(ctx, planID)
}

func (s *Service) getPlan(ctx context.Context, planID string) (*models.Plan, error) {
	row, err := s.db.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	return toModel(row)
}

// UpsertPlan создает или заменяет план и сбрасывает кеш каталога
func (s *Service) UpsertPlan(ctx context.Context, p *models.Plan) (*models.Plan, error) {
	if err := validatePlan(p); err != nil {
		return nil, err
	}

	row, err := toRow(p)
	if err != nil {
		return nil, err
	}
	if err := s.db.UpsertPlan(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to upsert plan: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, cacheKey); err != nil {
			s.log.Warn("failed to invalidate plan cache", "error", err)
		}
	}
	return p, nil
}

// allPlans читает каталог из Redis, при промахе или ошибке кеша - из YDB
func (s *Service) allPlans(ctx context.Context) ([]*models.Plan, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey)
		switch {
		case err == nil:
			var plans []*models.Plan
			if jsonErr := json.Unmarshal([]byte(raw), &plans); jsonErr == nil {
				metrics.PlanCacheLookups.WithLabelValues("hit").Inc()
				return plans, nil
			}
			s.log.Warn("corrupted plan cache entry, reloading")
		case errors.Is(err, cache.ErrCacheMiss):
		default:
			s.log.Warn("plan cache unavailable", "error", err)
		}
		metrics.PlanCacheLookups.WithLabelValues("miss").Inc()
	}

	rows, err := s.db.GetAllPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}

	plans := make([]*models.Plan, 0, len(rows))
	for _, row := range rows {
		p, err := toModel(row)
		if err != nil {
			s.log.Error("skipping malformed plan", "plan_id", row.PlanID, "error", err)
			continue
		}
		plans = append(plans, p)
	}

	if s.cache != nil {
		if data, err := json.Marshal(plans); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, cacheTTL); err != nil {
				s.log.Warn("failed to cache plans", "error", err)
			}
		}
	}
	return plans, nil
}

func validatePlan(p *models.Plan) error {
	if p == nil || strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: plan id and name are required", app_errors.ErrValidation)
	}
	priced := false
	for _, opt := range []*models.PriceOption{p.Pricing.Monthly, p.Pricing.Annual, p.Pricing.OneTime} {
		if opt == nil {
			continue
		}
		if opt.Price < 0 || (opt.OriginalPrice != nil && *opt.OriginalPrice < 0) {
			return fmt.Errorf("%w: prices must not be negative", app_errors.ErrValidation)
		}
		if opt.Price > 0 {
			priced = true
		}
		if opt.Currency == "" {
			opt.Currency = defaultCurrency
		}
	}
	// платный план обязан давать платный уровень, иначе оплата ничего не откроет
	if priced && !slices.Contains(tier.Paid, TierOf(*p)) {
		return fmt.Errorf("%w: paid plan %q does not map to a paid tier", app_errors.ErrValidation, p.Name)
	}
	return nil
}

func toModel(row *ydb.Plan) (*models.Plan, error) {
	p := &models.Plan{
		ID:          row.PlanID,
		Name:        row.Name,
		DisplayName: row.DisplayName,
		Description: row.Description,
		Category:    row.Category,
		PlanType:    row.PlanType,
		IsActive:    row.IsActive,
		IsPopular:   row.IsPopular,
		SortOrder:   int(row.SortOrder),
		Features:    []string{},
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Name
	}
	if row.PricingJSON != "" {
		if err := json.Unmarshal([]byte(row.PricingJSON), &p.Pricing); err != nil {
			return nil, fmt.Errorf("invalid pricing: %w", err)
		}
	}
	if row.FeaturesJSON != "" {
		if err := json.Unmarshal([]byte(row.FeaturesJSON), &p.Features); err != nil {
			return nil, fmt.Errorf("invalid features: %w", err)
		}
	}
	return p, nil
}

func toRow(p *models.Plan) (*ydb.Plan, error) {
	pricing, err := json.Marshal(p.Pricing)
	if err != nil {
		return nil, err
	}
	features := p.Features
	if features == nil {
		features = []string{}
	}
	featuresJSON, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	return &ydb.Plan{
		PlanID:       p.ID,
		Name:         p.Name,
		DisplayName:  p.DisplayName,
		Description:  p.Description,
		Category:     p.Category,
		PlanType:     p.PlanType,
		PricingJSON:  string(pricing),
		FeaturesJSON: string(featuresJSON),
		IsActive:     p.IsActive,
		IsPopular:    p.IsPopular,
		SortOrder:    int32(p.SortOrder),
	}, nil
}
