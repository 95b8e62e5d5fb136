package secrets

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"go.uber.org/zap"
)

// VaultClient wraps the Azure Key Vault secrets client with an in-process
// cache so hot secrets are not refetched on every read
type VaultClient struct {
	client       *azsecrets.Client
	vaultName    string
	logger       *zap.Logger
	cache        map[string]cachedSecret
	cacheTTL     time.Duration
	cacheEnabled bool
}

type cachedSecret struct {
	value     string
	expiresAt time.Time
}

// VaultConfig holds configuration for the vault client
type VaultConfig struct {
	VaultName    string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// NewVaultClient creates an Azure Key Vault client. DefaultAzureCredential
// covers environment credentials, managed identity and the Azure CLI.
func NewVaultClient(cfg *VaultConfig, logger *zap.Logger) (*VaultClient, error) {
	if cfg.VaultName == "" {
		return nil, fmt.Errorf("vault name is required")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	vaultURL := fmt.Sprintf("https://%s.vault.azure.net/", cfg.VaultName)

	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	logger.Info("key vault client initialized",
		zap.String("vault", cfg.VaultName),
		zap.Bool("cacheEnabled", cfg.CacheEnabled),
	)

	return &VaultClient{
		client:       client,
		vaultName:    cfg.VaultName,
		logger:       logger,
		cache:        make(map[string]cachedSecret),
		cacheTTL:     cacheTTL,
		cacheEnabled: cfg.CacheEnabled,
	}, nil
}

// GetSecret retrieves a secret, serving from cache while the entry is fresh
func (v *VaultClient) GetSecret(ctx context.Context, secretName string) (string, error) {
	if v.cacheEnabled {
		if cached, ok := v.cache[secretName]; ok {
			if time.Now().Before(cached.expiresAt) {
				return cached.value, nil
			}
			delete(v.cache, secretName)
		}
	}

	resp, err := v.client.GetSecret(ctx, secretName, "", nil)
	if err != nil {
		v.logger.Error("failed to get secret from key vault",
			zap.String("secret", secretName),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to get secret '%s': %w", secretName, err)
	}

	if resp.Value == nil {
		return "", fmt.Errorf("secret '%s' has no value", secretName)
	}

	value := *resp.Value

	if v.cacheEnabled {
		v.cache[secretName] = cachedSecret{
			value:     value,
			expiresAt: time.Now().Add(v.cacheTTL),
		}
	}

	return value, nil
}
