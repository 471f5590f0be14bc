package session

import "github.com/google/uuid"

// Fresh ids for sections and images added during a session. The prefixes
// keep the two id spaces recognizable in persisted payloads. UUIDs make
// two additions distinct no matter how close together they happen, which
// a clock-derived id cannot guarantee.

func newSectionID() string {
	return "section-" + uuid.NewString()
}

func newImageID() string {
	return "image-" + uuid.NewString()
}
