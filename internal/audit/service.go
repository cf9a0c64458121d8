package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lumiforge/tierhub-backend/internal/models"
	"github.com/lumiforge/tierhub-backend/internal/ydb"
)

// Service coordinates audit logging and retrieval
type Service struct {
	db  ydb.Database
	log *slog.Logger
}

// NewService builds an audit service instance
func NewService(db ydb.Database, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{db: db, log: log}
}

// Record captures runtime context of a user action
type Record struct {
	ID           string
	Timestamp    time.Time
	UserID       string
	ActionType   models.AuditActionType
	ActionResult models.AuditActionResult
	IPAddress    string
	UserAgent    string
	Details      map[string]any
}

// Filter describes query options for reading audit events
type Filter struct {
	UserID     string
	ActionType string
	Result     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// LogAction stores audit record synchronously
func (s *Service) LogAction(ctx context.Context, record Record) error {
	if record.ActionType == "" {
		return errors.New("action_type is required")
	}
	if record.ActionResult == "" {
		record.ActionResult = models.AuditResultSuccess
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	detailsJSON := "{}"
	if len(record.Details) > 0 {
		data, err := json.Marshal(record.Details)
		if err != nil {
			return fmt.Errorf("marshal details: %w", err)
		}
		detailsJSON = string(data)
	}

	entry := &ydb.AuditLog{
		ID:           record.ID,
		Timestamp:    record.Timestamp,
		UserID:       optional(record.UserID),
		ActionType:   string(record.ActionType),
		ActionResult: string(record.ActionResult),
		IPAddress:    optional(record.IPAddress),
		UserAgent:    optional(record.UserAgent),
		DetailsJSON:  detailsJSON,
	}

	if err := s.db.CreateAuditLog(ctx, entry); err != nil {
		s.log.Error("failed to write audit log", "error", err, "action", record.ActionType)
		return err
	}
	return nil
}

// Log is LogAction for callers that must not fail because of auditing.
func (s *Service) Log(ctx context.Context, record Record) {
	if s == nil {
		return
	}
	_ = s.LogAction(ctx, record)
}

// ListAuditLogs fetches stored events matching filter
func (s *Service) ListAuditLogs(ctx context.Context, filter Filter) (*models.GetAuditLogsResponse, error) {
	entries, total, err := s.db.ListAuditLogs(ctx, &ydb.AuditLogFilter{
		UserID:     filter.UserID,
		ActionType: filter.ActionType,
		Result:     filter.Result,
		From:       filter.From,
		To:         filter.To,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
	if err != nil {
		return nil, err
	}

	logs := make([]*models.AuditLog, 0, len(entries))
	for _, entry := range entries {
		details := json.RawMessage(entry.DetailsJSON)
		if !json.Valid(details) {
			s.log.Warn("invalid audit details", "entry_id", entry.ID)
			details = json.RawMessage("{}")
		}

		item := &models.AuditLog{
			ID:           entry.ID,
			Timestamp:    entry.Timestamp,
			ActionType:   entry.ActionType,
			ActionResult: entry.ActionResult,
			Details:      details,
		}
		if entry.UserID != nil {
			item.UserID = *entry.UserID
		}
		if entry.IPAddress != nil {
			item.IPAddress = *entry.IPAddress
		}
		if entry.UserAgent != nil {
			item.UserAgent = *entry.UserAgent
		}
		logs = append(logs, item)
	}

	return &models.GetAuditLogsResponse{
		Logs:   logs,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}
