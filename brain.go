// Package brain is the embeddable core of an interactive 3D brain
// anatomy viewer: the region document model, the editing/persistence
// state machine, and the seams a rendering host plugs into.
//
// The host drives the core from its UI callbacks:
//
//	v, err := brain.Open(brain.Options{StoragePath: dir})
//	defer v.Close()
//
//	v.Select("hippocampus")
//	s, _ := v.BeginEdit()
//	id := s.AddSection("Notes")
//	s.AddImage(id, "https://example.com/scan.png", "MRI scan")
//	v.CommitEdit(ctx)
//
// Rendering, camera controls, and theming live in the host; it consumes
// region ids, colors, positions and scales from the registry and feeds
// click and hover events back through Select and Hover.
package brain

import (
	"context"
	"fmt"

	"github.com/allenzhu312/Brain/internal/config"
	"github.com/allenzhu312/Brain/internal/generate"
	"github.com/allenzhu312/Brain/internal/logging"
	"github.com/allenzhu312/Brain/internal/registry"
	"github.com/allenzhu312/Brain/internal/storage"
	"github.com/allenzhu312/Brain/internal/types"
	"github.com/allenzhu312/Brain/internal/viewer"
)

// Re-exported model types. The document model lives in internal packages;
// these aliases are the names embedders use.
type (
	Region   = types.Region
	Section  = types.Section
	Image    = types.Image
	Vec3     = types.Vec3
	Language = types.Language

	RegionInfo  = generate.RegionInfo
	Suggestion  = viewer.Suggestion
	RegionEvent = registry.RegionEvent

	Logger = logging.Logger
)

// Supported display languages.
const (
	LangEn = types.LangEn
	LangZh = types.LangZh
)

// ParseLanguage resolves a BCP-47 tag to one of the supported languages.
func ParseLanguage(tag string) Language {
	return types.ParseLanguage(tag)
}

// GenerationOptions configures the optional remote content-generation
// collaborator.
type GenerationOptions struct {
	Enabled bool
	APIKey  string
	BaseURL string
	Model   string
}

// Options configures a Viewer.
type Options struct {
	// StoragePath is the directory for the durable store. Required
	// unless InMemory is set.
	StoragePath string
	// InMemory keeps all state in memory; edits survive the session
	// but not a restart.
	InMemory bool
	// Language is the startup display language; defaults to Chinese.
	Language Language
	// Generation configures the content-generation collaborator.
	Generation GenerationOptions
	// Logger receives structured log output; nil discards it.
	Logger Logger
}

// Viewer is the assembled core: registry, persistence gateway, and the
// selection/locale controller.
type Viewer struct {
	*viewer.Controller
	store storage.BlobStore
}

// Open builds a Viewer: it opens the durable store, restores the region
// registry from it (falling back to the compiled-in defaults), and wires
// the controller.
func Open(opts Options) (*Viewer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}

	var store storage.BlobStore
	if opts.InMemory {
		store = storage.NewMemoryStore()
	} else {
		s, err := storage.OpenBadger(storage.DefaultBadgerConfig(opts.StoragePath))
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		store = s
	}

	return open(store, opts, logger)
}

// OpenWithStore builds a Viewer over a caller-supplied blob store. Hosts
// use this to substitute their own storage (or a shared in-memory store
// in tests). The store is not closed by Viewer.Close.
func OpenWithStore(store storage.BlobStore, opts Options) (*Viewer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}
	v, err := open(store, opts, logger)
	if err != nil {
		return nil, err
	}
	v.store = nil
	return v, nil
}

func open(store storage.BlobStore, opts Options, logger Logger) (*Viewer, error) {
	var gen generate.Generator
	if opts.Generation.Enabled {
		g, err := generate.NewOpenAIGenerator(generate.Options{
			APIKey:  opts.Generation.APIKey,
			BaseURL: opts.Generation.BaseURL,
			Model:   opts.Generation.Model,
		}, logger)
		if err != nil {
			return nil, err
		}
		gen = g
	}

	gateway := storage.NewGateway(store, logger)
	reg := registry.NewRegionRegistry(gateway.Load(context.Background()))
	ctrl := viewer.NewController(reg, gateway, gen, opts.Language, logger)

	return &Viewer{Controller: ctrl, store: store}, nil
}

// OpenFromConfig builds a Viewer from neurovis.yml and NEUROVIS_
// environment variables.
func OpenFromConfig() (*Viewer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  parseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})

	return Open(Options{
		StoragePath: cfg.Storage.Path,
		InMemory:    cfg.Storage.InMemory,
		Language:    Language(cfg.Viewer.Language),
		Generation: GenerationOptions{
			Enabled: cfg.Generation.Enabled,
			APIKey:  cfg.Generation.APIKey(),
			BaseURL: cfg.Generation.BaseURL,
			Model:   cfg.Generation.Model,
		},
		Logger: logger,
	})
}

func parseLevel(level string) logging.LogLevel {
	switch level {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// Close releases the durable store. Viewers opened over a caller-supplied
// store leave closing to the caller.
func (v *Viewer) Close() error {
	if v.store == nil {
		return nil
	}
	return v.store.Close()
}
