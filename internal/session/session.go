// Package session implements the edit session: a private draft copy of one
// region's document, a set of synchronous mutation operations over it, and
// the commit/discard lifecycle.
//
// Every mutation applies only to the draft. Operations addressing a section
// or image id that does not exist are silent no-ops rather than errors: the
// editing surface cannot produce a missing id under normal operation, and a
// recoverable inconsistency should not crash it.
package session

import (
	"github.com/allenzhu312/Brain/internal/types"
)

// EditSession holds the draft copy of one region while it is being edited.
// At most one session is logically open at a time; the viewer controller
// enforces that by discarding the live session on any selection change.
type EditSession struct {
	draft types.Region
	open  bool
	dirty bool
}

// Begin opens a session seeded with a deep copy of the given region.
func Begin(region types.Region) *EditSession {
	return &EditSession{
		draft: region.Clone(),
		open:  true,
	}
}

// RegionID returns the id of the region this session edits.
func (s *EditSession) RegionID() string {
	return s.draft.ID
}

// Open reports whether the session is still accepting mutations.
func (s *EditSession) Open() bool {
	return s.open
}

// Dirty reports whether any mutation has been applied to the draft.
func (s *EditSession) Dirty() bool {
	return s.dirty
}

// Draft returns a deep copy of the current draft for display.
func (s *EditSession) Draft() types.Region {
	return s.draft.Clone()
}

// SetName updates the draft's display name for the given language.
// Empty values are allowed while drafting.
func (s *EditSession) SetName(lang types.Language, value string) {
	if !s.open {
		return
	}
	if lang == types.LangZh {
		s.draft.NameZh = value
	} else {
		s.draft.NameEn = value
	}
	s.dirty = true
}

// SetSectionTitle updates the title of the matching section.
func (s *EditSession) SetSectionTitle(sectionID, value string) {
	if !s.open {
		return
	}
	if i := s.draft.FindSection(sectionID); i >= 0 {
		s.draft.Sections[i].Title = value
		s.dirty = true
	}
}

// SetSectionContent updates the body of the matching section.
func (s *EditSession) SetSectionContent(sectionID, value string) {
	if !s.open {
		return
	}
	if i := s.draft.FindSection(sectionID); i >= 0 {
		s.draft.Sections[i].Content = value
		s.dirty = true
	}
}

// AddSection appends a new section with a fresh id, the given default
// title, empty content and an empty image list. It returns the new id,
// or the empty string if the session has ended.
func (s *EditSession) AddSection(titleDefault string) string {
	if !s.open {
		return ""
	}
	id := newSectionID()
	s.draft.Sections = append(s.draft.Sections, types.Section{
		ID:     id,
		Title:  titleDefault,
		Images: []types.Image{},
	})
	s.dirty = true
	return id
}

// RemoveSection removes the matching section. The explicit confirm step is
// part of the contract: without confirmation the call is a no-op, as it is
// when the id is absent.
func (s *EditSession) RemoveSection(sectionID string, confirmed bool) {
	if !s.open || !confirmed {
		return
	}
	if i := s.draft.FindSection(sectionID); i >= 0 {
		s.draft.Sections = append(s.draft.Sections[:i], s.draft.Sections[i+1:]...)
		s.dirty = true
	}
}

// AddImage appends a new image with a fresh id to the named section's
// image list and returns the new id. It fails silently (returning the
// empty string) when the section id does not exist.
func (s *EditSession) AddImage(sectionID, url, captionDefault string) string {
	if !s.open {
		return ""
	}
	i := s.draft.FindSection(sectionID)
	if i < 0 {
		return ""
	}
	id := newImageID()
	s.draft.Sections[i].Images = append(s.draft.Sections[i].Images, types.Image{
		ID:      id,
		URL:     url,
		Caption: captionDefault,
	})
	s.dirty = true
	return id
}

// RemoveImage removes the matching image; a no-op if either id is absent.
func (s *EditSession) RemoveImage(sectionID, imageID string) {
	if !s.open {
		return
	}
	si := s.draft.FindSection(sectionID)
	if si < 0 {
		return
	}
	if ii := s.draft.Sections[si].FindImage(imageID); ii >= 0 {
		images := s.draft.Sections[si].Images
		s.draft.Sections[si].Images = append(images[:ii], images[ii+1:]...)
		s.dirty = true
	}
}

// SetImageCaption updates the caption of the matching image only.
func (s *EditSession) SetImageCaption(sectionID, imageID, caption string) {
	if !s.open {
		return
	}
	si := s.draft.FindSection(sectionID)
	if si < 0 {
		return
	}
	if ii := s.draft.Sections[si].FindImage(imageID); ii >= 0 {
		s.draft.Sections[si].Images[ii].Caption = caption
		s.dirty = true
	}
}

// Commit ends the session and returns the finished draft for the registry
// to absorb via replace-by-id.
func (s *EditSession) Commit() types.Region {
	s.open = false
	return s.draft.Clone()
}

// Discard ends the session. The draft is dropped and the registry is
// unaffected; this is the cancellation path and has no other side effects.
func (s *EditSession) Discard() {
	s.open = false
}
