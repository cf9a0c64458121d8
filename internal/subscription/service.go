package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lumiforge/tierhub-backend/internal/audit"
	"github.com/lumiforge/tierhub-backend/internal/email"
	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/lumiforge/tierhub-backend/internal/metrics"
	"github.com/lumiforge/tierhub-backend/internal/models"
	"github.com/lumiforge/tierhub-backend/internal/plan"
	"github.com/lumiforge/tierhub-backend/internal/tier"
	"github.com/lumiforge/tierhub-backend/internal/ydb"
)

// ActivateOptions controls who activates a plan and whether payment has been taken.
type ActivateOptions struct {
	// PaymentConfirmed is set by the admin/billing endpoint once payment was taken externally.
	PaymentConfirmed bool
	ActorID          string
	IPAddress        string
	UserAgent        string
}

// Service реализует оформление подписок
type Service struct {
	db     ydb.Database
	plans  *plan.Service
	mailer email.Mailer
	audit  *audit.Service
	log    *slog.Logger
	now    func() time.Time
}

// NewService создает сервис подписок
func NewService(db ydb.Database, plans *plan.Service, mailer email.Mailer, auditSvc *audit.Service, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		db:     db,
		plans:  plans,
		mailer: mailer,
		audit:  auditSvc,
		log:    log,
		now:    time.Now,
	}
}

// Activate оформляет контракт на план и переводит пользователя на соответствующий уровень
func (s *Service) Activate(ctx context.Context, userID, planID, billingCycle string, opts ActivateOptions) (*models.ActivateSubscriptionResponse, error) {
	if userID == "" || planID == "" {
		return nil, fmt.Errorf("%w: user_id and plan_id are required", app_errors.ErrValidation)
	}

	p, err := s.plans.GetPlanAnyState(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, app_errors.ErrPlanInactive
	}

	opt, _, err := plan.PriceFor(*p, billingCycle)
	if err != nil {
		return nil, err
	}
	if opt == nil {
		return nil, app_errors.ErrBillingCycleNotPriced
	}
	if opt.Price > 0 && !opts.PaymentConfirmed {
		return nil, app_errors.ErrPaymentRequired
	}

	user, err := s.db.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.db.GetContractsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contracts: %w", err)
	}

	now := s.now().UTC()
	userTier := plan.TierOf(*p)

	// Бесплатная активация не должна вытеснять действующий контракт более высокого уровня
	if !opts.PaymentConfirmed {
		for _, c := range existing {
			if DisplayStatus(c, now) == DisplayActive && s.contractTier(ctx, c).Rank() > userTier.Rank() {
				return nil, app_errors.ErrHigherTierActive
			}
		}
	}

	productType := p.PlanType
	if productType == "" {
		productType = "subscription"
	}
	contract := &ydb.Contract{
		ContractID:   uuid.New().String(),
		UserID:       userID,
		PlanID:       p.ID,
		ProductType:  productType,
		BillingCycle: billingCycle,
		Tier:         userTier.String(),
		Status:       StatusActive,
		StartDate:    now,
		EndDate:      EndDateFor(billingCycle, now),
	}
	if err := s.db.CreateContract(ctx, contract); err != nil {
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}

	previous := user.Subscription
	user.Subscription = userTier.String()
	if err := s.db.UpdateUser(ctx, user); err != nil {
		// уровень не сменился: новый контракт отменяется, прежние остаются как были
		user.Subscription = previous
		contract.Status = StatusCancelled
		if cerr := s.db.UpdateContract(ctx, contract); cerr != nil {
			s.log.Error("failed to cancel orphaned contract", "contract_id", contract.ContractID, "error", cerr)
		}
		return nil, fmt.Errorf("failed to update user tier: %w", err)
	}

	// Предыдущие действующие контракты заменяются новым
	for _, c := range existing {
		if DisplayStatus(c, now) != DisplayActive {
			continue
		}
		c.Status = StatusSuperseded
		if err := s.db.UpdateContract(ctx, c); err != nil {
			s.log.Warn("failed to supersede contract", "contract_id", c.ContractID, "error", err)
		}
	}

	s.writeHistory(ctx, contract.ContractID, userID, p.ID, userTier, "activated", now)

	s.sendActivationEmail(ctx, user, p, contract)

	metrics.SubscriptionActivations.WithLabelValues(userTier.String(), billingCycle).Inc()
	s.audit.Log(ctx, audit.Record{
		UserID:     userID,
		ActionType: models.AuditSubscriptionActivate,
		IPAddress:  opts.IPAddress,
		UserAgent:  opts.UserAgent,
		Details: map[string]any{
			"contract_id":   contract.ContractID,
			"plan_id":       p.ID,
			"tier":          userTier.String(),
			"billing_cycle": billingCycle,
			"actor_id":      opts.ActorID,
		},
	})

	return &models.ActivateSubscriptionResponse{
		Subscription: user.Subscription,
		Contract:     toView(contract, now),
	}, nil
}

func (s *Service) sendActivationEmail(ctx context.Context, user *ydb.User, p *models.Plan, contract *ydb.Contract) {
	if s.mailer == nil || !s.mailer.IsConfigured() {
		return
	}
	msg, err := s.mailer.SendSubscriptionEmail(ctx, user.Email, user.FirstName, p.DisplayName, contract.EndDate)
	if err != nil {
		s.log.Error("failed to send subscription email", "error", err, "user_id", user.UserID)
	}
	if msg == nil {
		return
	}
	entry := &ydb.EmailLog{
		EmailID:   uuid.New().String(),
		UserID:    user.UserID,
		EmailType: string(msg.Type),
		Recipient: msg.Recipient,
		Status:    string(msg.Status),
		MessageID: msg.MessageID,
		SentAt:    msg.SentAt,
	}
	if msg.Error != "" {
		entry.ErrorMessage = &msg.Error
	}
	if err := s.db.CreateEmailLog(ctx, entry); err != nil {
		s.log.Warn("failed to write email log", "error", err)
	}
}

// ListContracts возвращает контракты пользователя, новые первыми
func (s *Service) ListContracts(ctx context.Context, userID string) ([]*models.ContractView, error) {
	contracts, err := s.db.GetContractsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(contracts, func(i, j int) bool {
		return contracts[i].StartDate.After(contracts[j].StartDate)
	})

	now := s.now()
	views := make([]*models.ContractView, 0, len(contracts))
	for _, c := range contracts {
		views = append(views, toView(c, now))
	}
	return views, nil
}

// GetSubscription возвращает текущий уровень пользователя и его контракты
func (s *Service) GetSubscription(ctx context.Context, userID string) (*models.GetSubscriptionResponse, error) {
	current, err := s.CurrentTier(ctx, userID)
	if err != nil {
		return nil, err
	}
	contracts, err := s.ListContracts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.GetSubscriptionResponse{
		Subscription: current.String(),
		Contracts:    contracts,
	}, nil
}

// CurrentTier returns the highest tier among the user's active contracts, or
// None when every contract has expired. A stored tier that disagrees with the
// contracts is rewritten so profile reads catch up.
func (s *Service) CurrentTier(ctx context.Context, userID string) (tier.Tier, error) {
	user, err := s.db.GetUserByID(ctx, userID)
	if err != nil {
		return tier.None, err
	}
	contracts, err := s.db.GetContractsByUser(ctx, userID)
	if err != nil && !errors.Is(err, app_errors.ErrNotFound) {
		return tier.None, fmt.Errorf("failed to load contracts: %w", err)
	}

	now := s.now().UTC()
	current := tier.None
	var source *ydb.Contract
	for _, c := range contracts {
		if DisplayStatus(c, now) != DisplayActive {
			continue
		}
		if t := s.contractTier(ctx, c); t.Rank() > current.Rank() {
			current, source = t, c
		}
	}

	stored := tier.Parse(user.Subscription)
	if stored == current {
		return current, nil
	}

	user.Subscription = current.String()
	if err := s.db.UpdateUser(ctx, user); err != nil {
		s.log.Warn("failed to sync stored tier", "user_id", userID, "error", err)
		return current, nil
	}
	event, contractID, planID := "expired", "", ""
	if source != nil {
		event, contractID, planID = "synced", source.ContractID, source.PlanID
	}
	s.writeHistory(ctx, contractID, userID, planID, current, event, now)
	s.log.Info("stored tier synced with contracts", "user_id", userID, "from", stored.String(), "to", current.String())
	return current, nil
}

// contractTier читает уровень из контракта; у старых записей без уровня он берется из плана
func (s *Service) contractTier(ctx context.Context, c *ydb.Contract) tier.Tier {
	if c.Tier != "" {
		return tier.Parse(c.Tier)
	}
	p, err := s.plans.GetPlanAnyState(ctx, c.PlanID)
	if err != nil {
		s.log.Warn("failed to resolve contract tier", "contract_id", c.ContractID, "error", err)
		return tier.None
	}
	return plan.TierOf(*p)
}

func (s *Service) writeHistory(ctx context.Context, contractID, userID, planID string, t tier.Tier, event string, at time.Time) {
	if err := s.db.CreateSubscriptionHistory(ctx, &ydb.SubscriptionHistory{
		HistoryID:  uuid.New().String(),
		ContractID: contractID,
		UserID:     userID,
		PlanID:     planID,
		Tier:       t.String(),
		EventType:  event,
		ChangedAt:  at,
	}); err != nil {
		s.log.Warn("failed to write subscription history", "contract_id", contractID, "error", err)
	}
}

// SessionTTLFor вычисляет время жизни сессии пользователя; при ошибке БД возвращает def
func (s *Service) SessionTTLFor(ctx context.Context, userID string, def, max time.Duration) time.Duration {
	contracts, err := s.db.GetContractsByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, app_errors.ErrNotFound) {
			s.log.Warn("failed to load contracts for session ttl", "user_id", userID, "error", err)
		}
		return SessionTTL(nil, s.now(), def, max)
	}
	return SessionTTL(contracts, s.now(), def, max)
}

func toView(c *ydb.Contract, now time.Time) *models.ContractView {
	v := &models.ContractView{
		ContractID:   c.ContractID,
		PlanID:       c.PlanID,
		ProductType:  c.ProductType,
		BillingCycle: c.BillingCycle,
		Status:       DisplayStatus(c, now),
		StartDate:    c.StartDate.Unix(),
	}
	if c.EndDate != nil {
		end := c.EndDate.Unix()
		v.EndDate = &end
	}
	if days, ok := DaysRemaining(c, now); ok {
		v.DaysRemaining = &days
	}
	return v
}
