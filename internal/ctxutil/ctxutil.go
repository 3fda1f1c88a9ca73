// Package ctxutil transporte les identifiants de requête dans le contexte.
package ctxutil

import "context"

type requestIDKey struct{}

// WithRequestID ajoute l'identifiant de requête au contexte
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx renvoie l'identifiant de requête, ou "" s'il est absent
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
