package secrets

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

// SecretSource defines where secrets are loaded from
type SecretSource string

const (
	// SourceEnvironment loads secrets from environment variables
	SourceEnvironment SecretSource = "environment"
	// SourceVault loads secrets from Azure Key Vault
	SourceVault SecretSource = "vault"
	// SourceAuto picks environment in development and vault everywhere else
	SourceAuto SecretSource = "auto"
)

// Provider abstracts secret retrieval from different sources
type Provider struct {
	source      SecretSource
	vaultClient *VaultClient
	logger      *zap.Logger
}

// ProviderConfig holds configuration for the secrets provider
type ProviderConfig struct {
	Source       SecretSource
	VaultName    string
	Environment  string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// NewProvider creates a secrets provider
func NewProvider(cfg *ProviderConfig, logger *zap.Logger) (*Provider, error) {
	source := cfg.Source

	if source == SourceAuto {
		switch cfg.Environment {
		case "development", "local", "":
			source = SourceEnvironment
		default:
			source = SourceVault
		}
		logger.Info("secret source auto-detected",
			zap.String("source", string(source)),
			zap.String("environment", cfg.Environment),
		)
	}

	provider := &Provider{
		source: source,
		logger: logger,
	}

	if source == SourceVault {
		if cfg.VaultName == "" {
			return nil, fmt.Errorf("vault name required when using vault secret source")
		}

		vaultClient, err := NewVaultClient(&VaultConfig{
			VaultName:    cfg.VaultName,
			CacheEnabled: cfg.CacheEnabled,
			CacheTTL:     cfg.CacheTTL,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize vault client: %w", err)
		}
		provider.vaultClient = vaultClient
	}

	return provider, nil
}

// GetSecret retrieves a secret by name. For the vault source, secretName is
// the Key Vault secret name; for the environment source it is the variable
// name.
func (p *Provider) GetSecret(ctx context.Context, secretName string) (string, error) {
	switch p.source {
	case SourceEnvironment:
		value := os.Getenv(secretName)
		if value == "" {
			return "", fmt.Errorf("environment variable '%s' not set", secretName)
		}
		return value, nil

	case SourceVault:
		if p.vaultClient == nil {
			return "", fmt.Errorf("vault client not initialized")
		}
		return p.vaultClient.GetSecret(ctx, secretName)

	default:
		return "", fmt.Errorf("unknown secret source: %s", p.source)
	}
}

// GetSecretOrEnv returns the environment variable when set, falling back to
// the configured source. Environment always wins so a deployment can override
// an individual vault secret.
func (p *Provider) GetSecretOrEnv(ctx context.Context, secretName, envName string) (string, error) {
	if envValue := os.Getenv(envName); envValue != "" {
		return envValue, nil
	}
	return p.GetSecret(ctx, secretName)
}

// IsVaultEnabled returns true if secrets are loaded from vault
func (p *Provider) IsVaultEnabled() bool {
	return p.source == SourceVault
}
