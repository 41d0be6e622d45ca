package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"archiver/database"
	"archiver/models"
)

// ProviderConfigRepository loads per-provider connector settings from the
// live store.
type ProviderConfigRepository struct {
	q queryable
}

// NewProviderConfigRepository creates a provider config repository.
func NewProviderConfigRepository(db *database.DB) *ProviderConfigRepository {
	return &ProviderConfigRepository{q: db.Pool}
}

// GetAll returns the raw JSON config of every configured provider.
func (r *ProviderConfigRepository) GetAll(ctx context.Context) (map[models.GameProvider]json.RawMessage, error) {
	rows, err := r.q.Query(ctx, `SELECT game_provider, config FROM public.provider_config`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider configs: %w", err)
	}
	defer rows.Close()

	configs := make(map[models.GameProvider]json.RawMessage)
	for rows.Next() {
		var provider string
		var config json.RawMessage
		if err := rows.Scan(&provider, &config); err != nil {
			return nil, fmt.Errorf("failed to scan provider config: %w", err)
		}
		configs[models.GameProvider(provider)] = config
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate provider configs: %w", err)
	}

	return configs, nil
}
