package ydb

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	"github.com/lumiforge/tierhub-backend/internal/config"
	"github.com/ydb-platform/ydb-go-sdk/v3"
	"github.com/ydb-platform/ydb-go-sdk/v3/table"
	"github.com/ydb-platform/ydb-go-sdk/v3/table/result"
	"github.com/ydb-platform/ydb-go-sdk/v3/table/result/named"
	"github.com/ydb-platform/ydb-go-sdk/v3/table/types"
	yc "github.com/ydb-platform/ydb-go-yc"
)

// YDBClient реализация интерфейса Database
type YDBClient struct {
	driver       *ydb.Driver
	databasePath string
}

// NewYDBClient создает новый клиент YDB
func NewYDBClient(ctx context.Context, cfg *config.Config) (*YDBClient, error) {
	endpoint := cfg.YDBEndpoint
	database := cfg.YDBDatabasePath

	if endpoint == "" || database == "" {
		return nil, fmt.Errorf("YDB credentials not provided. Please set TH_YDB_ENDPOINT and TH_YDB_DATABASE_PATH environment variables")
	}

	driver, err := ydb.Open(ctx, endpoint,
		ydb.WithDatabase(database),
		yc.WithMetadataCredentials(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrFailedToConnectYDB, err)
	}

	log.Println("Successfully connected to YDB")

	client := &YDBClient{
		driver:       driver,
		databasePath: database,
	}

	// Создаём таблицы только если флаг установлен
	if cfg.YDBAutoCreateTables > 0 {
		log.Println("TH_YDB_AUTO_CREATE_TABLES is enabled, checking and creating tables...")
		if err := client.Initialize(ctx); err != nil {
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return client, nil
}

// Close закрывает соединение с базой данных
func (c *YDBClient) Close() error {
	if c.driver != nil {
		return c.driver.Close(context.Background())
	}
	return nil
}

// Initialize создает недостающие таблицы
func (c *YDBClient) Initialize(ctx context.Context) error {
	return c.createTables(ctx)
}

var schema = []struct {
	name string
	ddl  string
}{
	{"users", `
		CREATE TABLE users (
			user_id Text NOT NULL,
			email Text NOT NULL,
			password_hash Text NOT NULL,
			first_name Text,
			last_name Text,
			subscription Text,
			role Text,
			email_verified Bool,
			verification_code Text,
			verification_expires_at Timestamp,
			is_active Bool,
			created_at Timestamp,
			updated_at Timestamp,
			PRIMARY KEY (user_id),
			INDEX email_idx GLOBAL UNIQUE ON (email)
		)`},
	{"refresh_tokens", `
		CREATE TABLE refresh_tokens (
			token_id Text NOT NULL,
			user_id Text NOT NULL,
			token_hash Text,
			expires_at Timestamp,
			created_at Timestamp,
			is_revoked Bool,
			PRIMARY KEY (token_id),
			INDEX user_idx GLOBAL ON (user_id),
			INDEX token_hash_idx GLOBAL ON (token_hash)
		)`},
	{"plans", `
		CREATE TABLE plans (
			plan_id Text NOT NULL,
			name Text,
			display_name Text,
			description Text,
			category Text,
			plan_type Text,
			pricing Text,
			features Text,
			is_active Bool,
			is_popular Bool,
			sort_order Int32,
			created_at Timestamp,
			updated_at Timestamp,
			PRIMARY KEY (plan_id)
		)`},
	{"contracts", `
		CREATE TABLE contracts (
			contract_id Text NOT NULL,
			user_id Text NOT NULL,
			plan_id Text,
			product_type Text,
			billing_cycle Text,
			tier Text,
			status Text,
			start_date Timestamp,
			end_date Timestamp,
			created_at Timestamp,
			updated_at Timestamp,
			PRIMARY KEY (contract_id),
			INDEX user_idx GLOBAL ON (user_id)
		)`},
	{"subscription_history", `
		CREATE TABLE subscription_history (
			history_id Text NOT NULL,
			contract_id Text,
			user_id Text,
			plan_id Text,
			tier Text,
			event_type Text,
			changed_at Timestamp,
			PRIMARY KEY (history_id)
		)`},
	{"documents", `
		CREATE TABLE documents (
			document_id Text NOT NULL,
			user_id Text NOT NULL,
			document_type Text,
			file_name Text,
			content_type Text,
			size_bytes Int64,
			storage_key Text,
			status Text,
			created_at Timestamp,
			uploaded_at Timestamp,
			PRIMARY KEY (document_id),
			INDEX user_idx GLOBAL ON (user_id)
		)`},
	{"email_logs", `
		CREATE TABLE email_logs (
			email_id Text NOT NULL,
			user_id Text,
			email_type Text,
			recipient Text,
			status Text,
			message_id Text,
			sent_at Timestamp,
			error_message Text,
			PRIMARY KEY (email_id)
		)`},
	{"audit_logs", `
		CREATE TABLE audit_logs (
			id Text NOT NULL,
			timestamp Timestamp,
			user_id Text,
			action_type Text,
			action_result Text,
			ip_address Text,
			user_agent Text,
			details Text,
			PRIMARY KEY (id),
			INDEX timestamp_idx GLOBAL ON (timestamp)
		)`},
}

// createTables создает таблицы в базе данных
func (c *YDBClient) createTables(ctx context.Context) error {
	log.Println("Starting table creation...")
	for i, t := range schema {
		if i > 0 {
			// Небольшая задержка между созданием таблиц для избежания лимита schema operations
			time.Sleep(500 * time.Millisecond)
		}
		log.Printf("Creating table: %s", t.name)
		exists, err := c.tableExists(ctx, t.name)
		if err != nil {
			return fmt.Errorf("failed to check %s table existence: %w", t.name, err)
		}
		if exists {
			log.Printf("Table %s already exists, skipping creation", t.name)
			continue
		}
		if err := c.executeSchemeQuery(ctx, t.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", t.name, err)
		}
	}
	return nil
}

// tableExists checks if a table exists in the database
func (c *YDBClient) tableExists(ctx context.Context, tableName string) (bool, error) {
	fullPath := path.Join(c.databasePath, tableName)
	err := c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, err := session.DescribeTable(ctx, fullPath)
		return err
	})

	if err != nil {
		// YDB returns SchemeError with "Path not found" (code 400070)
		msg := err.Error()
		if strings.Contains(msg, "not found") ||
			strings.Contains(msg, "does not exist") ||
			strings.Contains(msg, "code = 400070") {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// executeSchemeQuery выполняет DDL запрос
func (c *YDBClient) executeSchemeQuery(ctx context.Context, query string) error {
	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		return session.ExecuteSchemeQuery(ctx, query)
	})
}

// exec выполняет запрос без чтения результата
func (c *YDBClient) exec(ctx context.Context, query string, params ...table.ParameterOption) error {
	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, _, err := session.Execute(ctx, table.DefaultTxControl(), query, table.NewQueryParameters(params...))
		return err
	})
}

// query выполняет запрос и передаёт каждую строку в scan
func (c *YDBClient) query(ctx context.Context, query string, scan func(res result.Result) error, params ...table.ParameterOption) error {
	return c.driver.Table().Do(ctx, func(ctx context.Context, session table.Session) error {
		_, res, err := session.Execute(ctx, table.DefaultTxControl(), query, table.NewQueryParameters(params...))
		if err != nil {
			return err
		}
		defer res.Close()

		for res.NextResultSet(ctx) {
			for res.NextRow() {
				if err := scan(res); err != nil {
					return fmt.Errorf("scan failed: %w", err)
				}
			}
		}
		return res.Err()
	})
}

func optionalText(name string, v *string) table.ParameterOption {
	if v == nil {
		return table.ValueParam(name, types.NullValue(types.TypeText))
	}
	return table.ValueParam(name, types.OptionalValue(types.TextValue(*v)))
}

func optionalTimestamp(name string, v *time.Time) table.ParameterOption {
	if v == nil {
		return table.ValueParam(name, types.NullValue(types.TypeTimestamp))
	}
	return table.ValueParam(name, types.OptionalValue(types.TimestampValueFromTime(*v)))
}

// Пользователи

const userColumns = `user_id, email, password_hash, first_name, last_name, subscription, role,
	email_verified, verification_code, verification_expires_at, is_active, created_at, updated_at`

func scanUser(res result.Result, user *User) error {
	return res.ScanNamed(
		named.Required("user_id", &user.UserID),
		named.Required("email", &user.Email),
		named.Required("password_hash", &user.PasswordHash),
		named.OptionalWithDefault("first_name", &user.FirstName),
		named.OptionalWithDefault("last_name", &user.LastName),
		named.OptionalWithDefault("subscription", &user.Subscription),
		named.OptionalWithDefault("role", &user.Role),
		named.OptionalWithDefault("email_verified", &user.EmailVerified),
		named.Optional("verification_code", &user.VerificationCode),
		named.Optional("verification_expires_at", &user.VerificationExpiresAt),
		named.OptionalWithDefault("is_active", &user.IsActive),
		named.OptionalWithDefault("created_at", &user.CreatedAt),
		named.OptionalWithDefault("updated_at", &user.UpdatedAt),
	)
}

func (c *YDBClient) writeUser(ctx context.Context, user *User) error {
	query := `
		DECLARE $user_id AS Text;
		DECLARE $email AS Text;
		DECLARE $password_hash AS Text;
		DECLARE $first_name AS Text;
		DECLARE $last_name AS Text;
		DECLARE $subscription AS Text;
		DECLARE $role AS Text;
		DECLARE $email_verified AS Bool;
		DECLARE $verification_code AS Optional<Text>;
		DECLARE $verification_expires_at AS Optional<Timestamp>;
		DECLARE $is_active AS Bool;
		DECLARE $created_at AS Timestamp;
		DECLARE $updated_at AS Timestamp;

		UPSERT INTO users (` + userColumns + `)
		VALUES ($user_id, $email, $password_hash, $first_name, $last_name, $subscription, $role,
			$email_verified, $verification_code, $verification_expires_at, $is_active, $created_at, $updated_at)
	`

	return c.exec(ctx, query,
		table.ValueParam("$user_id", types.TextValue(user.UserID)),
		table.ValueParam("$email", types.TextValue(user.Email)),
		table.ValueParam("$password_hash", types.TextValue(user.PasswordHash)),
		table.ValueParam("$first_name", types.TextValue(user.FirstName)),
		table.ValueParam("$last_name", types.TextValue(user.LastName)),
		table.ValueParam("$subscription", types.TextValue(user.Subscription)),
		table.ValueParam("$role", types.TextValue(user.Role)),
		table.ValueParam("$email_verified", types.BoolValue(user.EmailVerified)),
		optionalText("$verification_code", user.VerificationCode),
		optionalTimestamp("$verification_expires_at", user.VerificationExpiresAt),
		table.ValueParam("$is_active", types.BoolValue(user.IsActive)),
		table.ValueParam("$created_at", types.TimestampValueFromTime(user.CreatedAt)),
		table.ValueParam("$updated_at", types.TimestampValueFromTime(user.UpdatedAt)),
	)
}

// CreateUser создает нового пользователя
func (c *YDBClient) CreateUser(ctx context.Context, user *User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	return c.writeUser(ctx, user)
}

// UpdateUser обновляет данные пользователя
func (c *YDBClient) UpdateUser(ctx context.Context, user *User) error {
	user.UpdatedAt = time.Now()
	return c.writeUser(ctx, user)
}

// GetUserByID получает пользователя по ID
func (c *YDBClient) GetUserByID(ctx context.Context, userID string) (*User, error) {
	query := `
		DECLARE $user_id AS Text;
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = $user_id
	`
	return c.getUser(ctx, query, table.ValueParam("$user_id", types.TextValue(userID)))
}

// GetUserByEmail получает пользователя по email
func (c *YDBClient) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		DECLARE $email AS Text;
		SELECT ` + userColumns + `
		FROM users VIEW email_idx
		WHERE email = $email
	`
	return c.getUser(ctx, query, table.ValueParam("$email", types.TextValue(email)))
}

func (c *YDBClient) getUser(ctx context.Context, query string, param table.ParameterOption) (*User, error) {
	var user *User
	err := c.query(ctx, query, func(res result.Result) error {
		var u User
		if err := scanUser(res, &u); err != nil {
			return err
		}
		user = &u
		return nil
	}, param)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %w", app_errors.ErrNotFound)
	}
	return user, nil
}

// Refresh токены

// CreateRefreshToken сохраняет хеш refresh токена
func (c *YDBClient) CreateRefreshToken(ctx context.Context, token *RefreshToken) error {
	query := `
		DECLARE $token_id AS Text;
		DECLARE $user_id AS Text;
		DECLARE $token_hash AS Text;
		DECLARE $expires_at AS Timestamp;
		DECLARE $created_at AS Timestamp;

		UPSERT INTO refresh_tokens (token_id, user_id, token_hash, expires_at, created_at, is_revoked)
		VALUES ($token_id, $user_id, $token_hash, $expires_at, $created_at, false)
	`

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	return c.exec(ctx, query,
		table.ValueParam("$token_id", types.TextValue(token.TokenID)),
		table.ValueParam("$user_id", types.TextValue(token.UserID)),
		table.ValueParam("$token_hash", types.TextValue(token.TokenHash)),
		table.ValueParam("$expires_at", types.TimestampValueFromTime(token.ExpiresAt)),
		table.ValueParam("$created_at", types.TimestampValueFromTime(token.CreatedAt)),
	)
}

// GetRefreshToken получает refresh токен по хешу
func (c *YDBClient) GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	query := `
		DECLARE $token_hash AS Text;
		SELECT token_id, user_id, token_hash, expires_at, created_at, is_revoked
		FROM refresh_tokens VIEW token_hash_idx
		WHERE token_hash = $token_hash
	`

	var token *RefreshToken
	err := c.query(ctx, query, func(res result.Result) error {
		var t RefreshToken
		if err := res.ScanNamed(
			named.Required("token_id", &t.TokenID),
			named.Required("user_id", &t.UserID),
			named.OptionalWithDefault("token_hash", &t.TokenHash),
			named.OptionalWithDefault("expires_at", &t.ExpiresAt),
			named.OptionalWithDefault("created_at", &t.CreatedAt),
			named.OptionalWithDefault("is_revoked", &t.IsRevoked),
		); err != nil {
			return err
		}
		token = &t
		return nil
	}, table.ValueParam("$token_hash", types.TextValue(tokenHash)))
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("refresh token %w", app_errors.ErrNotFound)
	}
	return token, nil
}

// RevokeRefreshToken отзывает refresh токен
func (c *YDBClient) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	query := `
		DECLARE $token_hash AS Text;
		UPDATE refresh_tokens ON
		SELECT token_id, true AS is_revoked
		FROM refresh_tokens VIEW token_hash_idx
		WHERE token_hash = $token_hash
	`
	return c.exec(ctx, query, table.ValueParam("$token_hash", types.TextValue(tokenHash)))
}

// RevokeAllUserRefreshTokens отзывает все refresh токены пользователя
func (c *YDBClient) RevokeAllUserRefreshTokens(ctx context.Context, userID string) error {
	query := `
		DECLARE $user_id AS Text;
		UPDATE refresh_tokens ON
		SELECT token_id, true AS is_revoked
		FROM refresh_tokens VIEW user_idx
		WHERE user_id = $user_id
	`
	return c.exec(ctx, query, table.ValueParam("$user_id", types.TextValue(userID)))
}

// Тарифные планы

const planColumns = `plan_id, name, display_name, description, category, plan_type,
	pricing, features, is_active, is_popular, sort_order, created_at, updated_at`

func scanPlan(res result.Result, p *Plan) error {
	return res.ScanNamed(
		named.Required("plan_id", &p.PlanID),
		named.OptionalWithDefault("name", &p.Name),
		named.OptionalWithDefault("display_name", &p.DisplayName),
		named.OptionalWithDefault("description", &p.Description),
		named.OptionalWithDefault("category", &p.Category),
		named.OptionalWithDefault("plan_type", &p.PlanType),
		named.OptionalWithDefault("pricing", &p.PricingJSON),
		named.OptionalWithDefault("features", &p.FeaturesJSON),
		named.OptionalWithDefault("is_active", &p.IsActive),
		named.OptionalWithDefault("is_popular", &p.IsPopular),
		named.OptionalWithDefault("sort_order", &p.SortOrder),
		named.OptionalWithDefault("created_at", &p.CreatedAt),
		named.OptionalWithDefault("updated_at", &p.UpdatedAt),
	)
}

// GetPlanByID получает тарифный план по ID
func (c *YDBClient) GetPlanByID(ctx context.Context, planID string) (*Plan, error) {
	query := `
		DECLARE $plan_id AS Text;
		SELECT ` + planColumns + `
		FROM plans
		WHERE plan_id = $plan_id
	`

	var plan *Plan
	err := c.query(ctx, query, func(res result.Result) error {
		var p Plan
		if err := scanPlan(res, &p); err != nil {
			return err
		}
		plan = &p
		return nil
	}, table.ValueParam("$plan_id", types.TextValue(planID)))
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, app_errors.ErrPlanNotFound
	}
	return plan, nil
}

// GetAllPlans возвращает все тарифные планы, включая неактивные
func (c *YDBClient) GetAllPlans(ctx context.Context) ([]*Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans`

	var plans []*Plan
	err := c.query(ctx, query, func(res result.Result) error {
		var p Plan
		if err := scanPlan(res, &p); err != nil {
			return err
		}
		plans = append(plans, &p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// UpsertPlan создает или заменяет тарифный план
func (c *YDBClient) UpsertPlan(ctx context.Context, plan *Plan) error {
	query := `
		DECLARE $plan_id AS Text;
		DECLARE $name AS Text;
		DECLARE $display_name AS Text;
		DECLARE $description AS Text;
		DECLARE $category AS Text;
		DECLARE $plan_type AS Text;
		DECLARE $pricing AS Text;
		DECLARE $features AS Text;
		DECLARE $is_active AS Bool;
		DECLARE $is_popular AS Bool;
		DECLARE $sort_order AS Int32;
		DECLARE $created_at AS Timestamp;
		DECLARE $updated_at AS Timestamp;

		UPSERT INTO plans (` + planColumns + `)
		VALUES ($plan_id, $name, $display_name, $description, $category, $plan_type,
			$pricing, $features, $is_active, $is_popular, $sort_order, $created_at, $updated_at)
	`

	now := time.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	return c.exec(ctx, query,
		table.ValueParam("$plan_id", types.TextValue(plan.PlanID)),
		table.ValueParam("$name", types.TextValue(plan.Name)),
		table.ValueParam("$display_name", types.TextValue(plan.DisplayName)),
		table.ValueParam("$description", types.TextValue(plan.Description)),
		table.ValueParam("$category", types.TextValue(plan.Category)),
		table.ValueParam("$plan_type", types.TextValue(plan.PlanType)),
		table.ValueParam("$pricing", types.TextValue(plan.PricingJSON)),
		table.ValueParam("$features", types.TextValue(plan.FeaturesJSON)),
		table.ValueParam("$is_active", types.BoolValue(plan.IsActive)),
		table.ValueParam("$is_popular", types.BoolValue(plan.IsPopular)),
		table.ValueParam("$sort_order", types.Int32Value(plan.SortOrder)),
		table.ValueParam("$created_at", types.TimestampValueFromTime(plan.CreatedAt)),
		table.ValueParam("$updated_at", types.TimestampValueFromTime(plan.UpdatedAt)),
	)
}

// Контракты

const contractColumns = `contract_id, user_id, plan_id, product_type, billing_cycle, tier, status,
	start_date, end_date, created_at, updated_at`

func (c *YDBClient) writeContract(ctx context.Context, contract *Contract) error {
	query := `
		DECLARE $contract_id AS Text;
		DECLARE $user_id AS Text;
		DECLARE $plan_id AS Text;
		DECLARE $product_type AS Text;
		DECLARE $billing_cycle AS Text;
		DECLARE $tier AS Text;
		DECLARE $status AS Text;
		DECLARE $start_date AS Timestamp;
		DECLARE $end_date AS Optional<Timestamp>;
		DECLARE $created_at AS Timestamp;
		DECLARE $updated_at AS Timestamp;

		UPSERT INTO contracts (` + contractColumns + `)
		VALUES ($contract_id, $user_id, $plan_id, $product_type, $billing_cycle, $tier, $status,
			$start_date, $end_date, $created_at, $updated_at)
	`

	return c.exec(ctx, query,
		table.ValueParam("$contract_id", types.TextValue(contract.ContractID)),
		table.ValueParam("$user_id", types.TextValue(contract.UserID)),
		table.ValueParam("$plan_id", types.TextValue(contract.PlanID)),
		table.ValueParam("$product_type", types.TextValue(contract.ProductType)),
		table.ValueParam("$billing_cycle", types.TextValue(contract.BillingCycle)),
		table.ValueParam("$tier", types.TextValue(contract.Tier)),
		table.ValueParam("$status", types.TextValue(contract.Status)),
		table.ValueParam("$start_date", types.TimestampValueFromTime(contract.StartDate)),
		optionalTimestamp("$end_date", contract.EndDate),
		table.ValueParam("$created_at", types.TimestampValueFromTime(contract.CreatedAt)),
		table.ValueParam("$updated_at", types.TimestampValueFromTime(contract.UpdatedAt)),
	)
}

// CreateContract создает контракт подписки
func (c *YDBClient) CreateContract(ctx context.Context, contract *Contract) error {
	now := time.Now()
	contract.CreatedAt = now
	contract.UpdatedAt = now
	return c.writeContract(ctx, contract)
}

// UpdateContract обновляет контракт подписки
func (c *YDBClient) UpdateContract(ctx context.Context, contract *Contract) error {
	contract.UpdatedAt = time.Now()
	return c.writeContract(ctx, contract)
}

// GetContractsByUser возвращает контракты пользователя, новые первыми
func (c *YDBClient) GetContractsByUser(ctx context.Context, userID string) ([]*Contract, error) {
	query := `
		DECLARE $user_id AS Text;
		SELECT ` + contractColumns + `
		FROM contracts VIEW user_idx
		WHERE user_id = $user_id
		ORDER BY start_date DESC
	`

	var contracts []*Contract
	err := c.query(ctx, query, func(res result.Result) error {
		var ct Contract
		if err := res.ScanNamed(
			named.Required("contract_id", &ct.ContractID),
			named.Required("user_id", &ct.UserID),
			named.OptionalWithDefault("plan_id", &ct.PlanID),
			named.OptionalWithDefault("product_type", &ct.ProductType),
			named.OptionalWithDefault("billing_cycle", &ct.BillingCycle),
			named.OptionalWithDefault("tier", &ct.Tier),
			named.OptionalWithDefault("status", &ct.Status),
			named.OptionalWithDefault("start_date", &ct.StartDate),
			named.Optional("end_date", &ct.EndDate),
			named.OptionalWithDefault("created_at", &ct.CreatedAt),
			named.OptionalWithDefault("updated_at", &ct.UpdatedAt),
		); err != nil {
			return err
		}
		contracts = append(contracts, &ct)
		return nil
	}, table.ValueParam("$user_id", types.TextValue(userID)))
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// CreateSubscriptionHistory создает запись в истории подписок
func (c *YDBClient) CreateSubscriptionHistory(ctx context.Context, history *SubscriptionHistory) error {
	query := `
		DECLARE $history_id AS Text;
		DECLARE $contract_id AS Text;
		DECLARE $user_id AS Text;
		DECLARE $plan_id AS Text;
		DECLARE $tier AS Text;
		DECLARE $event_type AS Text;
		DECLARE $changed_at AS Timestamp;

		UPSERT INTO subscription_history (history_id, contract_id, user_id, plan_id, tier, event_type, changed_at)
		VALUES ($history_id, $contract_id, $user_id, $plan_id, $tier, $event_type, $changed_at)
	`

	return c.exec(ctx, query,
		table.ValueParam("$history_id", types.TextValue(history.HistoryID)),
		table.ValueParam("$contract_id", types.TextValue(history.ContractID)),
		table.ValueParam("$user_id", types.TextValue(history.UserID)),
		table.ValueParam("$plan_id", types.TextValue(history.PlanID)),
		table.ValueParam("$tier", types.TextValue(history.Tier)),
		table.ValueParam("$event_type", types.TextValue(history.EventType)),
		table.ValueParam("$changed_at", types.TimestampValueFromTime(history.ChangedAt)),
	)
}

// Документы

const documentColumns = `document_id, user_id, document_type, file_name, content_type,
	size_bytes, storage_key, status, created_at, uploaded_at`

func scanDocument(res result.Result, d *Document) error {
	return res.ScanNamed(
		named.Required("document_id", &d.DocumentID),
		named.Required("user_id", &d.UserID),
		named.OptionalWithDefault("document_type", &d.DocumentType),
		named.OptionalWithDefault("file_name", &d.FileName),
		named.OptionalWithDefault("content_type", &d.ContentType),
		named.OptionalWithDefault("size_bytes", &d.SizeBytes),
		named.OptionalWithDefault("storage_key", &d.StorageKey),
		named.OptionalWithDefault("status", &d.Status),
		named.OptionalWithDefault("created_at", &d.CreatedAt),
		named.Optional("uploaded_at", &d.UploadedAt),
	)
}

func (c *YDBClient) writeDocument(ctx context.Context, doc *Document) error {
	query := `
		DECLARE $document_id AS Text;
		DECLARE $user_id AS Text;
		DECLARE $document_type AS Text;
		DECLARE $file_name AS Text;
		DECLARE $content_type AS Text;
		DECLARE $size_bytes AS Int64;
		DECLARE $storage_key AS Text;
		DECLARE $status AS Text;
		DECLARE $created_at AS Timestamp;
		DECLARE $uploaded_at AS Optional<Timestamp>;

		UPSERT INTO documents (` + documentColumns + `)
		VALUES ($document_id, $user_id, $document_type, $file_name, $content_type,
			$size_bytes, $storage_key, $status, $created_at, $uploaded_at)
	`

	return c.exec(ctx, query,
		table.ValueParam("$document_id", types.TextValue(doc.DocumentID)),
		table.ValueParam("$user_id", types.TextValue(doc.UserID)),
		table.ValueParam("$document_type", types.TextValue(doc.DocumentType)),
		table.ValueParam("$file_name", types.TextValue(doc.FileName)),
		table.ValueParam("$content_type", types.TextValue(doc.ContentType)),
		table.ValueParam("$size_bytes", types.Int64Value(doc.SizeBytes)),
		table.ValueParam("$storage_key", types.TextValue(doc.StorageKey)),
		table.ValueParam("$status", types.TextValue(doc.Status)),
		table.ValueParam("$created_at", types.TimestampValueFromTime(doc.CreatedAt)),
		optionalTimestamp("$uploaded_at", doc.UploadedAt),
	)
}

// CreateDocument создает запись о документе
func (c *YDBClient) CreateDocument(ctx context.Context, doc *Document) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	return c.writeDocument(ctx, doc)
}

// UpdateDocument обновляет запись о документе
func (c *YDBClient) UpdateDocument(ctx context.Context, doc *Document) error {
	return c.writeDocument(ctx, doc)
}

// GetDocument получает документ по ID
func (c *YDBClient) GetDocument(ctx context.Context, documentID string) (*Document, error) {
	query := `
		DECLARE $document_id AS Text;
		SELECT ` + documentColumns + `
		FROM documents
		WHERE document_id = $document_id
	`

	var doc *Document
	err := c.query(ctx, query, func(res result.Result) error {
		var d Document
		if err := scanDocument(res, &d); err != nil {
			return err
		}
		doc = &d
		return nil
	}, table.ValueParam("$document_id", types.TextValue(documentID)))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("document %w", app_errors.ErrNotFound)
	}
	return doc, nil
}

// GetDocumentsByUser возвращает документы пользователя, новые первыми
func (c *YDBClient) GetDocumentsByUser(ctx context.Context, userID string) ([]*Document, error) {
	query := `
		DECLARE $user_id AS Text;
		SELECT ` + documentColumns + `
		FROM documents VIEW user_idx
		WHERE user_id = $user_id
		ORDER BY created_at DESC
	`

	var docs []*Document
	err := c.query(ctx, query, func(res result.Result) error {
		var d Document
		if err := scanDocument(res, &d); err != nil {
			return err
		}
		docs = append(docs, &d)
		return nil
	}, table.ValueParam("$user_id", types.TextValue(userID)))
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Email логи

// CreateEmailLog создает запись в логе email
func (c *YDBClient) CreateEmailLog(ctx context.Context, entry *EmailLog) error {
	query := `
		DECLARE $email_id AS Text;
		DECLARE $user_id AS Text;
		DECLARE $email_type AS Text;
		DECLARE $recipient AS Text;
		DECLARE $status AS Text;
		DECLARE $message_id AS Text;
		DECLARE $sent_at AS Timestamp;
		DECLARE $error_message AS Optional<Text>;

		UPSERT INTO email_logs (email_id, user_id, email_type, recipient, status, message_id, sent_at, error_message)
		VALUES ($email_id, $user_id, $email_type, $recipient, $status, $message_id, $sent_at, $error_message)
	`

	return c.exec(ctx, query,
		table.ValueParam("$email_id", types.TextValue(entry.EmailID)),
		table.ValueParam("$user_id", types.TextValue(entry.UserID)),
		table.ValueParam("$email_type", types.TextValue(entry.EmailType)),
		table.ValueParam("$recipient", types.TextValue(entry.Recipient)),
		table.ValueParam("$status", types.TextValue(entry.Status)),
		table.ValueParam("$message_id", types.TextValue(entry.MessageID)),
		table.ValueParam("$sent_at", types.TimestampValueFromTime(entry.SentAt)),
		optionalText("$error_message", entry.ErrorMessage),
	)
}

// Аудит

// CreateAuditLog сохраняет запись аудита
func (c *YDBClient) CreateAuditLog(ctx context.Context, entry *AuditLog) error {
	query := `
		DECLARE $id AS Text;
		DECLARE $timestamp AS Timestamp;
		DECLARE $user_id AS Optional<Text>;
		DECLARE $action_type AS Text;
		DECLARE $action_result AS Text;
		DECLARE $ip_address AS Optional<Text>;
		DECLARE $user_agent AS Optional<Text>;
		DECLARE $details AS Text;

		UPSERT INTO audit_logs (id, timestamp, user_id, action_type, action_result, ip_address, user_agent, details)
		VALUES ($id, $timestamp, $user_id, $action_type, $action_result, $ip_address, $user_agent, $details)
	`

	return c.exec(ctx, query,
		table.ValueParam("$id", types.TextValue(entry.ID)),
		table.ValueParam("$timestamp", types.TimestampValueFromTime(entry.Timestamp)),
		optionalText("$user_id", entry.UserID),
		table.ValueParam("$action_type", types.TextValue(entry.ActionType)),
		table.ValueParam("$action_result", types.TextValue(entry.ActionResult)),
		optionalText("$ip_address", entry.IPAddress),
		optionalText("$user_agent", entry.UserAgent),
		table.ValueParam("$details", types.TextValue(entry.DetailsJSON)),
	)
}

// ListAuditLogs возвращает записи аудита по фильтру и общее количество совпадений
func (c *YDBClient) ListAuditLogs(ctx context.Context, filter *AuditLogFilter) ([]*AuditLog, int64, error) {
	if filter == nil {
		filter = &AuditLogFilter{}
	}

	var (
		declares   []string
		conditions []string
		params     []table.ParameterOption
	)
	addText := func(column, value string) {
		if value == "" {
			return
		}
		name := "$" + column
		declares = append(declares, fmt.Sprintf("DECLARE %s AS Text;", name))
		conditions = append(conditions, fmt.Sprintf("%s = %s", column, name))
		params = append(params, table.ValueParam(name, types.TextValue(value)))
	}
	addText("user_id", filter.UserID)
	addText("action_type", filter.ActionType)
	addText("action_result", filter.Result)
	if filter.From != nil {
		declares = append(declares, "DECLARE $from AS Timestamp;")
		conditions = append(conditions, "timestamp >= $from")
		params = append(params, table.ValueParam("$from", types.TimestampValueFromTime(*filter.From)))
	}
	if filter.To != nil {
		declares = append(declares, "DECLARE $to AS Timestamp;")
		conditions = append(conditions, "timestamp <= $to")
		params = append(params, table.ValueParam("$to", types.TimestampValueFromTime(*filter.To)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}
	header := strings.Join(declares, "\n")

	var total uint64
	countQuery := header + "\nSELECT COUNT(*) AS total FROM audit_logs" + where
	err := c.query(ctx, countQuery, func(res result.Result) error {
		return res.ScanNamed(named.Required("total", &total))
	}, params...)
	if err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	dataQuery := header + `
		DECLARE $limit AS Uint64;
		DECLARE $offset AS Uint64;
		SELECT id, timestamp, user_id, action_type, action_result, ip_address, user_agent, details
		FROM audit_logs` + where + `
		ORDER BY timestamp DESC
		LIMIT $limit OFFSET $offset`
	dataParams := append(params,
		table.ValueParam("$limit", types.Uint64Value(uint64(limit))),
		table.ValueParam("$offset", types.Uint64Value(uint64(offset))),
	)

	var entries []*AuditLog
	err = c.query(ctx, dataQuery, func(res result.Result) error {
		var e AuditLog
		if err := res.ScanNamed(
			named.Required("id", &e.ID),
			named.OptionalWithDefault("timestamp", &e.Timestamp),
			named.Optional("user_id", &e.UserID),
			named.OptionalWithDefault("action_type", &e.ActionType),
			named.OptionalWithDefault("action_result", &e.ActionResult),
			named.Optional("ip_address", &e.IPAddress),
			named.Optional("user_agent", &e.UserAgent),
			named.OptionalWithDefault("details", &e.DetailsJSON),
		); err != nil {
			return err
		}
		entries = append(entries, &e)
		return nil
	}, dataParams...)
	if err != nil {
		return nil, 0, err
	}

	return entries, int64(total), nil
}
