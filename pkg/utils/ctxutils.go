package utils

import (
	"context"

	"inventory-system/pkg/constants"
	"inventory-system/pkg/contextkeys"
	apperrors "inventory-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (string, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(string)
	if !ok || role == "" {
		return "", apperrors.ErrForbidden
	}
	return role, nil
}

// RequireAdmin — проверка повышенной роли для разрушительных операций
// (удаление единицы, отмена заказа).
func RequireAdmin(ctx context.Context) error {
	role, err := GetUserRoleFromCtx(ctx)
	if err != nil {
		return err
	}
	if role != constants.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}
