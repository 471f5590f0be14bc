package storage

import (
	"context"
	"encoding/json"
	"errors"

	neuroerr "github.com/allenzhu312/Brain/internal/errors"
	"github.com/allenzhu312/Brain/internal/logging"
	"github.com/allenzhu312/Brain/internal/registry"
	"github.com/allenzhu312/Brain/internal/types"
)

// StorageKey is the fixed key the whole registry is persisted under. The
// name carries the schema version: breaking changes bump it, which forces
// older payloads to be ignored and defaults to be used. There is no
// migration logic beyond parse-or-fall-back.
const StorageKey = "neurovis_data_v2"

// Gateway serializes the full region registry to the blob store on every
// committed change and restores it at startup.
type Gateway struct {
	store  BlobStore
	logger logging.Logger
}

// NewGateway creates a gateway over the given store.
func NewGateway(store BlobStore, logger logging.Logger) *Gateway {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &Gateway{
		store:  store,
		logger: logger.WithComponent("storage"),
	}
}

// Load reads the persisted registry payload. The payload is accepted only
// if it parses as a non-empty JSON array; any failure (missing key, parse
// error, wrong shape, empty array) logs the condition and returns the
// compiled-in default regions. Load never returns an error to the caller.
func (g *Gateway) Load(ctx context.Context) []types.Region {
	payload, err := g.store.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			g.logger.Info(ctx, "no persisted data, using defaults", "key", StorageKey)
		} else {
			g.logger.Warn(ctx, err, "failed to read persisted data, using defaults", "key", StorageKey)
		}
		return registry.DefaultRegions()
	}

	var regions []types.Region
	if err := json.Unmarshal(payload, &regions); err != nil {
		g.logger.Warn(ctx, err, "failed to parse persisted data, using defaults", "key", StorageKey)
		return registry.DefaultRegions()
	}
	if len(regions) == 0 {
		g.logger.Warn(ctx, nil, "persisted data is empty, using defaults", "key", StorageKey)
		return registry.DefaultRegions()
	}

	registry.NormalizeRegions(regions)
	g.logger.Debug(ctx, "restored persisted regions", "count", len(regions))
	return regions
}

// Save serializes the full region list and writes it under the fixed key,
// overwriting any previous value. A failed write is reported as a storage
// error; callers log it and keep the in-memory registry authoritative for
// the rest of the session.
func (g *Gateway) Save(ctx context.Context, regions []types.Region) error {
	payload, err := json.Marshal(regions)
	if err != nil {
		// Only reachable with values outside the defined schema.
		return neuroerr.NewStorageError("STORAGE_ENCODE", "failed to encode regions", err)
	}

	if err := g.store.Set(ctx, StorageKey, payload); err != nil {
		return neuroerr.NewStorageError("STORAGE_WRITE", "failed to write regions", err)
	}

	g.logger.Debug(ctx, "persisted regions", "count", len(regions), "bytes", len(payload))
	return nil
}
