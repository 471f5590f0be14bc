// Package types provides the document model shared by the registry, edit
// session, and persistence layers: anatomical regions with bilingual names
// and an ordered, user-editable document of sections and image attachments.
// This package contains shared types to avoid circular dependencies between packages.
package types

// Vec3 is a 3-component vector consumed by the rendering collaborator for
// procedural placement and scaling. The core passes it through unmodified.
type Vec3 [3]float64

// Image is one captioned visual attachment within a section. URL may be an
// external link or an embedded data URI; the display layer treats both the
// same way.
type Image struct {
	// ID is unique within the owning section's image list
	ID string `json:"id" yaml:"id"`
	// URL is an external link or a data-encoded payload
	URL string `json:"url" yaml:"url"`
	// Caption is free text, editable independently of the image itself
	Caption string `json:"caption" yaml:"caption"`
}

// Section is one named block of a region's document. Titles may mix both
// languages; only the region name has per-language fields.
type Section struct {
	// ID is unique within the owning region's section list
	ID string `json:"id" yaml:"id"`
	// Title is a free-text label
	Title string `json:"title" yaml:"title"`
	// Content is the free-text body
	Content string `json:"content" yaml:"content"`
	// Images is the ordered list of attachments
	Images []Image `json:"images" yaml:"images"`
}

// Region is one anatomical structure with a bilingual name and an editable
// document. Position, Scale and Color exist for the rendering collaborator
// and are opaque to the core.
type Region struct {
	// ID is the stable unique identifier, immutable after creation
	ID string `json:"id" yaml:"id"`
	// NameEn and NameZh are the display names; shipped defaults are
	// non-empty but a draft may edit either to the empty string
	NameEn string `json:"nameEn" yaml:"nameEn"`
	NameZh string `json:"nameZh" yaml:"nameZh"`
	// Color is a display color token
	Color string `json:"color" yaml:"color"`
	// Position and Scale drive procedural placement in the renderer
	Position Vec3 `json:"position" yaml:"position"`
	Scale    Vec3 `json:"scale" yaml:"scale"`
	// Sections is the ordered document; display order == stored order
	Sections []Section `json:"sections" yaml:"sections"`
}

// Clone returns a deep copy of the region. Edit sessions operate on clones
// so that readers always see a consistent, previously committed region.
func (r Region) Clone() Region {
	out := r
	out.Sections = cloneSections(r.Sections)
	return out
}

func cloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = s
		if s.Images != nil {
			out[i].Images = make([]Image, len(s.Images))
			copy(out[i].Images, s.Images)
		}
	}
	return out
}

// Name returns the display name for the given language.
func (r Region) Name(lang Language) string {
	if lang == LangZh {
		return r.NameZh
	}
	return r.NameEn
}

// FindSection returns the index of the section with the given id, or -1.
func (r Region) FindSection(id string) int {
	for i := range r.Sections {
		if r.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// FindImage returns the index of the image with the given id, or -1.
func (s Section) FindImage(id string) int {
	for i := range s.Images {
		if s.Images[i].ID == id {
			return i
		}
	}
	return -1
}

// Normalize makes a restored region safe for display and editing: absent
// section and image lists become empty lists. Deeper shape problems are
// deliberately left alone; the load boundary only checks that the payload
// is a non-empty sequence.
func (r *Region) Normalize() {
	if r.Sections == nil {
		r.Sections = []Section{}
	}
	for i := range r.Sections {
		if r.Sections[i].Images == nil {
			r.Sections[i].Images = []Image{}
		}
	}
}
