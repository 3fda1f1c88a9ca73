package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager signe et vérifie les tokens d'accès HS256
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager crée un gestionnaire de tokens
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Generate crée un token signé dont le sujet est l'ID de l'utilisateur
func (m *TokenManager) Generate(userID int) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signature du token: %w", err)
	}
	return signed, nil
}

// Validate vérifie signature, algorithme, expiration et émetteur
// puis renvoie l'ID de l'utilisateur
func (m *TokenManager) Validate(tokenString string) (int, error) {
	if tokenString == "" {
		return 0, errors.New("token vide")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("lecture du token: %w", err)
	}
	if !token.Valid {
		return 0, errors.New("token invalide")
	}

	if claims.Issuer != m.issuer {
		return 0, fmt.Errorf("émetteur invalide: %s", claims.Issuer)
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("sujet invalide: %q", claims.Subject)
	}

	return userID, nil
}
