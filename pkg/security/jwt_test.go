package security_test

import (
	"testing"
	"time"

	"github.com/pitstop/oficina-api/internal/domain/model"
	"github.com/pitstop/oficina-api/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestKeyManager_GenerateAndVerify(t *testing.T) {
	logger := zaptest.NewLogger(t)
	km, err := security.NewKeyManager([]byte("segredo-de-teste"), logger)
	require.NoError(t, err)

	token, err := km.GenerateToken("user-123", model.RoleAdmin, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := km.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestKeyManager_EmptySecret(t *testing.T) {
	logger := zaptest.NewLogger(t)
	_, err := security.NewKeyManager(nil, logger)
	require.Error(t, err)
}

func TestKeyManager_ExpiredToken(t *testing.T) {
	logger := zaptest.NewLogger(t)
	km, err := security.NewKeyManager([]byte("segredo-de-teste"), logger)
	require.NoError(t, err)

	token, err := km.GenerateToken("user-123", model.RoleClient, -time.Minute)
	require.NoError(t, err)

	_, err = km.VerifyToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expirado")
}

func TestKeyManager_WrongSecret(t *testing.T) {
	logger := zaptest.NewLogger(t)
	km, err := security.NewKeyManager([]byte("segredo-a"), logger)
	require.NoError(t, err)

	other, err := security.NewKeyManager([]byte("segredo-b"), logger)
	require.NoError(t, err)

	token, err := km.GenerateToken("user-123", model.RoleClient, time.Hour)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	require.Error(t, err)
}
