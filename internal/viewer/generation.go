package viewer

import (
	"context"
	"strings"

	"github.com/allenzhu312/Brain/internal/generate"
	"github.com/allenzhu312/Brain/internal/session"
)

// Default titles for sections recreated by a generated-content merge when
// the user has deleted them from the draft.
const (
	functionSectionID    = "function"
	diseasesSectionID    = "diseases"
	functionSectionTitle = "Function / 功能介绍"
	diseasesSectionTitle = "Related Diseases / 相关疾病"
)

// Suggestion is generated content tagged with the edit session it was
// produced for. The tag stays with the suggestion so that ApplyGenerated
// can reject it if the user has moved on to a different region in the
// meantime.
type Suggestion struct {
	Info generate.RegionInfo

	target *session.EditSession
}

// RegionID reports the region the suggestion was generated for.
func (s Suggestion) RegionID() string {
	if s.target == nil {
		return ""
	}
	return s.target.RegionID()
}

// GenerateInfo requests suggested content for the region the live edit
// session targets. The suggestion is tagged with that session at dispatch
// time; if the session is no longer live when the response resolves (the
// user closed the panel, switched regions, or committed), the response is
// dropped and ErrStaleGeneration is returned. The call blocks on the
// remote collaborator, so hosts run it off the UI loop.
func (c *Controller) GenerateInfo(ctx context.Context) (Suggestion, error) {
	if c.generator == nil {
		return Suggestion{}, ErrGenerationDisabled
	}

	c.mutex.Lock()
	target := c.session
	lang := c.language
	c.mutex.Unlock()

	if target == nil || !target.Open() {
		return Suggestion{}, ErrNoSession
	}
	name := target.Draft().Name(lang)

	info, err := c.generator.Generate(ctx, name)
	if err != nil {
		return Suggestion{}, err
	}

	c.mutex.Lock()
	current := c.session
	c.mutex.Unlock()

	if current != target || !target.Open() {
		c.logger.Debug(ctx, "dropping stale generation response", "region", target.RegionID())
		return Suggestion{}, ErrStaleGeneration
	}
	return Suggestion{Info: info, target: target}, nil
}

// ApplyGenerated merges a suggestion into the live draft using the
// ordinary session operations: the description and function list go into
// the function section, the disease list into the diseases section.
// Sections the user deleted from the draft are recreated first. The merge
// fails with ErrNoSession if no session is live, and with
// ErrStaleGeneration if the suggestion was generated for a session other
// than the live one.
func (c *Controller) ApplyGenerated(sug Suggestion) error {
	c.mutex.Lock()
	s := c.session
	c.mutex.Unlock()

	if s == nil || !s.Open() {
		return ErrNoSession
	}
	if sug.target != s {
		c.logger.Debug(context.Background(), "dropping stale generation suggestion", "region", sug.RegionID())
		return ErrStaleGeneration
	}
	info := sug.Info

	if content := composeContent(info.Description, info.Functions); content != "" {
		setSectionContent(s, functionSectionID, functionSectionTitle, content)
	}
	if content := composeContent("", info.Diseases); content != "" {
		setSectionContent(s, diseasesSectionID, diseasesSectionTitle, content)
	}
	return nil
}

// setSectionContent writes content into the named section, recreating the
// section with its default title when it is absent from the draft.
func setSectionContent(s *session.EditSession, sectionID, title, content string) {
	if s.Draft().FindSection(sectionID) < 0 {
		sectionID = s.AddSection(title)
	}
	s.SetSectionContent(sectionID, content)
}

// composeContent joins an optional lead paragraph and a list of items
// into one section body.
func composeContent(lead string, items []string) string {
	var parts []string
	if lead != "" {
		parts = append(parts, lead)
	}
	if len(items) > 0 {
		parts = append(parts, strings.Join(items, ", "))
	}
	return strings.Join(parts, "\n\n")
}
