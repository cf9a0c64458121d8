package ydb

import (
	"time"
)

// User представляет пользователя в системе
type User struct {
	UserID                string     `db:"user_id"`
	Email                 string     `db:"email"`
	PasswordHash          string     `db:"password_hash"`
	FirstName             string     `db:"first_name"`
	LastName              string     `db:"last_name"`
	Subscription          string     `db:"subscription"`
	Role                  string     `db:"role"`
	EmailVerified         bool       `db:"email_verified"`
	VerificationCode      *string    `db:"verification_code"`
	VerificationExpiresAt *time.Time `db:"verification_expires_at"`
	IsActive              bool       `db:"is_active"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

// Plan представляет тарифный план; цены и список возможностей хранятся в JSON
type Plan struct {
	PlanID       string    `db:"plan_id"`
	Name         string    `db:"name"`
	DisplayName  string    `db:"display_name"`
	Description  string    `db:"description"`
	Category     string    `db:"category"`
	PlanType     string    `db:"plan_type"`
	PricingJSON  string    `db:"pricing"`
	FeaturesJSON string    `db:"features"`
	IsActive     bool      `db:"is_active"`
	IsPopular    bool      `db:"is_popular"`
	SortOrder    int32     `db:"sort_order"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Contract представляет оформленную подписку пользователя.
// EndDate отсутствует у бессрочных (one_time) покупок.
type Contract struct {
	ContractID   string     `db:"contract_id"`
	UserID       string     `db:"user_id"`
	PlanID       string     `db:"plan_id"`
	ProductType  string     `db:"product_type"`
	BillingCycle string     `db:"billing_cycle"`
	Tier         string     `db:"tier"`
	Status       string     `db:"status"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      *time.Time `db:"end_date"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// SubscriptionHistory представляет историю изменений подписок
type SubscriptionHistory struct {
	HistoryID  string    `db:"history_id"`
	ContractID string    `db:"contract_id"`
	UserID     string    `db:"user_id"`
	PlanID     string    `db:"plan_id"`
	Tier       string    `db:"tier"`
	EventType  string    `db:"event_type"`
	ChangedAt  time.Time `db:"changed_at"`
}

// Document представляет загруженный пользователем документ
type Document struct {
	DocumentID   string     `db:"document_id"`
	UserID       string     `db:"user_id"`
	DocumentType string     `db:"document_type"`
	FileName     string     `db:"file_name"`
	ContentType  string     `db:"content_type"`
	SizeBytes    int64      `db:"size_bytes"`
	StorageKey   string     `db:"storage_key"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UploadedAt   *time.Time `db:"uploaded_at"`
}

// EmailLog представляет лог отправленного email
type EmailLog struct {
	EmailID      string    `db:"email_id"`
	UserID       string    `db:"user_id"`
	EmailType    string    `db:"email_type"`
	Recipient    string    `db:"recipient"`
	Status       string    `db:"status"`
	MessageID    string    `db:"message_id"`
	SentAt       time.Time `db:"sent_at"`
	ErrorMessage *string   `db:"error_message"`
}

// RefreshToken представляет refresh токен
type RefreshToken struct {
	TokenID   string    `db:"token_id"`
	UserID    string    `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
	IsRevoked bool      `db:"is_revoked"`
}

// AuditLog представляет запись аудита
type AuditLog struct {
	ID           string    `db:"id"`
	Timestamp    time.Time `db:"timestamp"`
	UserID       *string   `db:"user_id"`
	ActionType   string    `db:"action_type"`
	ActionResult string    `db:"action_result"`
	IPAddress    *string   `db:"ip_address"`
	UserAgent    *string   `db:"user_agent"`
	DetailsJSON  string    `db:"details"`
}

// AuditLogFilter задаёт условия выборки записей аудита
type AuditLogFilter struct {
	UserID     string
	ActionType string
	Result     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
