package auth

import "context"

// key pour stocker l'ID utilisateur dans le contexte
type userIDKeyType struct{}

var userIDKey = userIDKeyType{}

// WithUserID ajoute l'ID de l'utilisateur authentifié au contexte
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext recup l'ID utilisateur posé par le middleware
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok && id > 0
}
