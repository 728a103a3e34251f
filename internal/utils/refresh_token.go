package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/KiptooAbel/snake-game-backend/internal/database"
	"github.com/google/uuid"
)

// RefreshTokenDuration durée de validité d'un refresh token (30 jours)
const RefreshTokenDuration = 30 * 24 * time.Hour

// CreateRefreshToken crée un nouveau refresh token pour un utilisateur.
// Seul le hash SHA-256 du token est stocké en base.
func CreateRefreshToken(ctx context.Context, userID, ipAddress, userAgent string) (string, error) {
	token := uuid.NewString()
	tokenHash := hashToken(token)

	now := time.Now()

	var refreshTokenID string
	err := database.DB.QueryRow(ctx,
		`INSERT INTO refresh_tokens(user_id, token_hash, ip_address, user_agent, expires_at, created_at)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		userID, tokenHash, ipAddress, userAgent, now.Add(RefreshTokenDuration), now,
	).Scan(&refreshTokenID)

	if err != nil {
		return "", fmt.Errorf("could not create refresh token: %w", err)
	}

	return token, nil
}

// ValidateRefreshToken valide un refresh token et retourne l'ID utilisateur
func ValidateRefreshToken(ctx context.Context, token string) (string, error) {
	tokenHash := hashToken(token)

	var userID string
	var expiresAt time.Time
	var revokedAt *time.Time

	err := database.DB.QueryRow(ctx,
		`SELECT user_id, expires_at, revoked_at
		 FROM refresh_tokens
		 WHERE token_hash=$1`,
		tokenHash,
	).Scan(&userID, &expiresAt, &revokedAt)

	if err != nil {
		return "", fmt.Errorf("refresh token invalide ou introuvable")
	}

	if revokedAt != nil {
		return "", fmt.Errorf("refresh token révoqué")
	}

	if time.Now().After(expiresAt) {
		return "", fmt.Errorf("refresh token expiré")
	}

	return userID, nil
}

// RevokeRefreshToken révoque un refresh token (rotation à chaque usage)
func RevokeRefreshToken(ctx context.Context, token string) error {
	tokenHash := hashToken(token)

	_, err := database.DB.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at=NOW() WHERE token_hash=$1 AND revoked_at IS NULL`,
		tokenHash,
	)
	return err
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
