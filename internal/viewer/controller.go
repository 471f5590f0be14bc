// Package viewer implements the interaction state machine around the
// region registry: which region is selected, which language is active,
// and the single live edit session those two gate.
//
// The controller owns at most one edit session at a time. Any selection
// change discards the live session as an explicit state transition; a
// draft is never auto-committed on navigation away.
package viewer

import (
	"context"
	"sync"

	neuroerr "github.com/allenzhu312/Brain/internal/errors"
	"github.com/allenzhu312/Brain/internal/generate"
	"github.com/allenzhu312/Brain/internal/logging"
	"github.com/allenzhu312/Brain/internal/registry"
	"github.com/allenzhu312/Brain/internal/session"
	"github.com/allenzhu312/Brain/internal/storage"
	"github.com/allenzhu312/Brain/internal/types"
)

// ErrNoSelection is returned when an operation needs a selected region.
var ErrNoSelection = neuroerr.NewValidationError("VIEW_NO_SELECTION", "no region is selected")

// ErrNoSession is returned when an operation needs a live edit session.
var ErrNoSession = neuroerr.NewValidationError("VIEW_NO_SESSION", "no edit session is open")

// ErrStaleGeneration is returned when a generation response resolves after
// its target region is no longer being edited. The response is dropped.
var ErrStaleGeneration = neuroerr.NewGenerationError("GEN_STALE", "generation response no longer matches the active session", nil)

// ErrGenerationDisabled is returned when no generator is configured.
var ErrGenerationDisabled = neuroerr.NewValidationError("GEN_DISABLED", "content generation is not configured")

// Controller tracks selection and locale state and orchestrates the
// commit path: session commit, registry replace, persistence write.
type Controller struct {
	registry  *registry.RegionRegistry
	gateway   *storage.Gateway
	generator generate.Generator
	logger    logging.Logger

	mutex    sync.Mutex
	selected string
	hovered  string
	language types.Language
	session  *session.EditSession
}

// NewController creates a controller over the given collaborators.
// generator may be nil when content generation is disabled.
func NewController(reg *registry.RegionRegistry, gw *storage.Gateway, gen generate.Generator, lang types.Language, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if !lang.IsValid() {
		lang = types.LangZh
	}
	return &Controller{
		registry:  reg,
		gateway:   gw,
		generator: gen,
		language:  lang,
		logger:    logger.WithComponent("viewer"),
	}
}

// Registry exposes the underlying registry for read access (rendering).
func (c *Controller) Registry() *registry.RegionRegistry {
	return c.registry
}

// Select opens the panel for the given region id. Selecting a different
// region while an edit session is open implicitly discards that session.
// An unknown id is a no-op and leaves the selection unchanged.
func (c *Controller) Select(id string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.registry.GetByID(id); !exists {
		return false
	}
	if c.selected != id {
		c.dropSession("selection changed")
	}
	c.selected = id
	return true
}

// Deselect closes the panel, discarding any live edit session.
func (c *Controller) Deselect() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.dropSession("panel closed")
	c.selected = ""
}

// Selected returns the currently selected region id, if any.
func (c *Controller) Selected() (string, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.selected, c.selected != ""
}

// SelectedRegion returns the committed document of the selected region.
func (c *Controller) SelectedRegion() (types.Region, bool) {
	c.mutex.Lock()
	id := c.selected
	c.mutex.Unlock()

	if id == "" {
		return types.Region{}, false
	}
	return c.registry.GetByID(id)
}

// Hover records which region the pointer is over; empty clears it. Pure
// state for the rendering collaborator, no transition rules.
func (c *Controller) Hover(id string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.hovered = id
}

// Hovered returns the hovered region id, if any.
func (c *Controller) Hovered() (string, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.hovered, c.hovered != ""
}

// SetLanguage switches the display language. Invalid values are ignored.
func (c *Controller) SetLanguage(lang types.Language) {
	if !lang.IsValid() {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.language = lang
}

// ToggleLanguage flips between the two supported languages.
func (c *Controller) ToggleLanguage() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.language = c.language.Other()
}

// Language returns the active display language.
func (c *Controller) Language() types.Language {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.language
}

// BeginEdit opens an edit session for the selected region. Calling it
// again while a session is live returns the same session.
func (c *Controller) BeginEdit() (*session.EditSession, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.selected == "" {
		return nil, ErrNoSelection
	}
	if c.session != nil && c.session.Open() {
		return c.session, nil
	}

	region, exists := c.registry.GetByID(c.selected)
	if !exists {
		return nil, ErrNoSelection
	}
	c.session = session.Begin(region)
	return c.session, nil
}

// Session returns the live edit session, if one is open.
func (c *Controller) Session() (*session.EditSession, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.session == nil || !c.session.Open() {
		return nil, false
	}
	return c.session, true
}

// CommitEdit pushes the live draft into the registry and persists the
// whole registry. The commit is complete once the write has been issued;
// a failed write is logged and otherwise ignored, leaving the in-memory
// registry authoritative for the rest of the session.
func (c *Controller) CommitEdit(ctx context.Context) error {
	c.mutex.Lock()
	if c.session == nil || !c.session.Open() {
		c.mutex.Unlock()
		return ErrNoSession
	}
	region := c.session.Commit()
	c.session = nil
	c.mutex.Unlock()

	if !c.registry.Replace(region) {
		// Regions are never created via commit; an unknown id means the
		// draft outlived a reseed of the registry.
		c.logger.Warn(ctx, nil, "commit dropped, region no longer exists", "region", region.ID)
		return nil
	}

	if err := c.gateway.Save(ctx, c.registry.GetAll()); err != nil {
		c.logger.Warn(ctx, err, "persistence write failed, in-memory state remains authoritative", "region", region.ID)
	}
	return nil
}

// DiscardEdit drops the live draft, leaving the registry untouched.
func (c *Controller) DiscardEdit() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.dropSession("discarded")
}

// dropSession discards the live session if one is open. Callers must
// hold the mutex.
func (c *Controller) dropSession(reason string) {
	if c.session != nil && c.session.Open() {
		c.logger.Debug(context.Background(), "edit session discarded",
			"region", c.session.RegionID(), "reason", reason)
		c.session.Discard()
	}
	c.session = nil
}
