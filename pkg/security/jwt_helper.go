package security

import (
	"os"

	"github.com/pitstop/oficina-api/pkg/config"
)

// GetJWTSecret obtém o segredo JWT nas seguintes fontes, nesta ordem:
// 1. Variável de ambiente JWT_SECRET
// 2. Variável de ambiente OFICINA_AUTH_JWTSECRET
// 3. Arquivo de configuração
func GetJWTSecret(cfg *config.Config) []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret != "" {
		return []byte(secret)
	}

	secret = os.Getenv("OFICINA_AUTH_JWTSECRET")
	if secret != "" {
		return []byte(secret)
	}

	if cfg != nil && cfg.Auth.JWTSecret != "" {
		return []byte(cfg.Auth.JWTSecret)
	}

	return nil
}
