package rbac

import (
	"context"

	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
)

// Permission представляет разрешение в системе
type Permission string

const (
	// Контент и документы
	PermissionContentView    Permission = "content:view"
	PermissionDocumentUpload Permission = "document:upload"

	// Пользовательские разрешения
	PermissionProfileEdit Permission = "profile:edit"

	// Административные разрешения
	PermissionPlanManage         Permission = "admin:manage_plans"
	PermissionSubscriptionManage Permission = "admin:manage_subscriptions"
	PermissionAuditView          Permission = "admin:view_logs"
)

// Role представляет роль в системе
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type roleContextKey struct{}

// RBAC управляет ролями и разрешениями
type RBAC struct {
	rolePermissions map[Role][]Permission
}

// NewRBAC создает новый RBAC менеджер
func NewRBAC() *RBAC {
	return &RBAC{
		rolePermissions: map[Role][]Permission{
			// Admin - все разрешения
			RoleAdmin: {
				PermissionContentView,
				PermissionDocumentUpload,
				PermissionProfileEdit,
				PermissionPlanManage,
				PermissionSubscriptionManage,
				PermissionAuditView,
			},
			RoleMember: {
				PermissionContentView,
				PermissionDocumentUpload,
				PermissionProfileEdit,
			},
		},
	}
}

// WithRole кладёт роль пользователя в контекст
func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, roleContextKey{}, role)
}

// RoleFromContext достаёт роль пользователя из контекста
func RoleFromContext(ctx context.Context) (Role, bool) {
	role, ok := ctx.Value(roleContextKey{}).(Role)
	return role, ok
}

// CheckPermission проверяет разрешение для роли из контекста
func (r *RBAC) CheckPermission(ctx context.Context, permission Permission) (bool, error) {
	role, ok := RoleFromContext(ctx)
	if !ok {
		return false, app_errors.ErrUserRoleNotFoundInContext
	}
	return r.hasPermission(role, permission), nil
}

// CheckPermissionWithRole проверяет разрешение для указанной роли
func (r *RBAC) CheckPermissionWithRole(role Role, permission Permission) bool {
	return r.hasPermission(role, permission)
}

func (r *RBAC) hasPermission(role Role, permission Permission) bool {
	for _, p := range r.rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// GetRolePermissions возвращает копию списка разрешений роли
func (r *RBAC) GetRolePermissions(role Role) []Permission {
	permissions := r.rolePermissions[role]
	result := make([]Permission, len(permissions))
	copy(result, permissions)
	return result
}

// RoleHierarchy определяет иерархию ролей
var RoleHierarchy = map[Role]int{
	RoleMember: 1,
	RoleAdmin:  2,
}

// ParseRole возвращает известную роль; всё остальное становится member
func ParseRole(value string) Role {
	role := Role(value)
	if _, ok := RoleHierarchy[role]; ok {
		return role
	}
	return RoleMember
}

// IsValidRole проверяет, является ли роль валидной
func (r *RBAC) IsValidRole(role Role) bool {
	_, exists := r.rolePermissions[role]
	return exists
}
