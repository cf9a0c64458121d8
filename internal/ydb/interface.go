package ydb

import (
	"context"
)

// Database определяет интерфейс для работы с базой данных
type Database interface {
	// Пользователи
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error

	// Refresh токены
	CreateRefreshToken(ctx context.Context, token *RefreshToken) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserRefreshTokens(ctx context.Context, userID string) error

	// Тарифные планы
	GetPlanByID(ctx context.Context, planID string) (*Plan, error)
	GetAllPlans(ctx context.Context) ([]*Plan, error)
	UpsertPlan(ctx context.Context, plan *Plan) error

	// Контракты (подписки)
	CreateContract(ctx context.Context, contract *Contract) error
	GetContractsByUser(ctx context.Context, userID string) ([]*Contract, error)
	UpdateContract(ctx context.Context, contract *Contract) error
	CreateSubscriptionHistory(ctx context.Context, history *SubscriptionHistory) error

	// Документы
	CreateDocument(ctx context.Context, doc *Document) error
	GetDocument(ctx context.Context, documentID string) (*Document, error)
	UpdateDocument(ctx context.Context, doc *Document) error
	GetDocumentsByUser(ctx context.Context, userID string) ([]*Document, error)

	// Email логи
	CreateEmailLog(ctx context.Context, log *EmailLog) error

	// Аудит
	CreateAuditLog(ctx context.Context, entry *AuditLog) error
	ListAuditLogs(ctx context.Context, filter *AuditLogFilter) ([]*AuditLog, int64, error)

	// Инициализация
	Initialize(ctx context.Context) error
	Close() error
}
