// Package connectors holds the per-provider detail lookup clients. Each
// provider has its own auth scheme, so each client owns its signing or
// encryption; all of them are best-effort collaborators selected through a
// registry keyed by provider tag.
package connectors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"archiver/models"
	"archiver/service"

	log "github.com/sirupsen/logrus"
)

// Registry maps providers to their configured detail fetchers. It implements
// service.DetailRegistry; providers without a config row simply have no
// fetcher and their bets are archived without detail.
type Registry struct {
	fetchers map[models.GameProvider]service.DetailFetcher
}

// Fetcher returns the detail fetcher for a provider, if one was configured.
func (r *Registry) Fetcher(provider models.GameProvider) (service.DetailFetcher, bool) {
	f, ok := r.fetchers[provider]
	return f, ok
}

// Load builds the registry from the provider_config rows of the live store.
// A present but unparsable config is a provisioning error and fails the run;
// an absent config only disables that provider's enrichment.
func Load(configs map[models.GameProvider]json.RawMessage, timeout time.Duration) (*Registry, error) {
	client := &http.Client{Timeout: timeout}
	fetchers := make(map[models.GameProvider]service.DetailFetcher)

	register := func(provider models.GameProvider, build func(json.RawMessage) (service.DetailFetcher, error)) error {
		raw, ok := configs[provider]
		if !ok {
			log.WithField("provider", provider).Debug("no connector config, detail enrichment disabled")
			return nil
		}
		fetcher, err := build(raw)
		if err != nil {
			return fmt.Errorf("failed to build %s connector: %w", provider, err)
		}
		fetchers[provider] = fetcher
		return nil
	}

	if err := register(models.ProviderSexy, func(raw json.RawMessage) (service.DetailFetcher, error) {
		return newAEConnector(raw, client)
	}); err != nil {
		return nil, err
	}

	// Pragmatic serves live casino and slots from the same history API.
	if err := register(models.ProviderPragmaticLive, func(raw json.RawMessage) (service.DetailFetcher, error) {
		return newPragmaticConnector(raw, client)
	}); err != nil {
		return nil, err
	}
	if f, ok := fetchers[models.ProviderPragmaticLive]; ok {
		fetchers[models.ProviderPragmaticSlot] = f
	}

	if err := register(models.ProviderRoyalSlotGaming, func(raw json.RawMessage) (service.DetailFetcher, error) {
		return newRoyalSlotGamingConnector(raw, client)
	}); err != nil {
		return nil, err
	}

	if err := register(models.ProviderAmeba, func(raw json.RawMessage) (service.DetailFetcher, error) {
		return newAmebaConnector(raw, client)
	}); err != nil {
		return nil, err
	}

	if err := register(models.ProviderArcadia, func(raw json.RawMessage) (service.DetailFetcher, error) {
		return newArcadiaConnector(raw, client)
	}); err != nil {
		return nil, err
	}

	if err := register(models.ProviderKingmaker, func(raw json.RawMessage) (service.DetailFetcher, error) {
		return newKingMakerConnector(raw, client)
	}); err != nil {
		return nil, err
	}

	// Relax, YGG and Hacksaw all resolve through the DotConnections
	// aggregator.
	if raw, ok := configs[models.ProviderRelax]; ok {
		dot, err := newDotConnectionsConnector(raw, client)
		if err != nil {
			return nil, fmt.Errorf("failed to build dot_connections connector: %w", err)
		}
		fetchers[models.ProviderRelax] = dot
		fetchers[models.ProviderYGG] = dot
		fetchers[models.ProviderHacksaw] = dot
	}

	log.WithField("connectors", len(fetchers)).Info("provider connectors loaded")
	return &Registry{fetchers: fetchers}, nil
}

// detailResult wraps a provider history URL the way the reporting archive
// expects a detail payload.
func detailResult(bet *models.Bet, url string) *models.BetDetail {
	payload, _ := json.Marshal(map[string]string{"result": url})
	details := string(payload)
	return &models.BetDetail{
		BetID:   bet.ID,
		Details: &details,
	}
}
