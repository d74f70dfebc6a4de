package middleware

import "context"

type contextKey string

const UserIDKey contextKey = "user_id"

// GetUserID возвращает user_id из контекста (устанавливается Auth).
func GetUserID(ctx context.Context) string {
	v, _ := ctx.Value(UserIDKey).(string)
	return v
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}
