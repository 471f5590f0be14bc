package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allenzhu312/Brain/internal/types"
)

func TestNewRegionRegistry(t *testing.T) {
	reg := NewRegionRegistry(DefaultRegions())

	assert.NotNil(t, reg)
	assert.Equal(t, 7, reg.Count())
}

func TestNewRegionRegistry_DropsDuplicates(t *testing.T) {
	regions := []types.Region{
		{ID: "a", NameEn: "first"},
		{ID: "a", NameEn: "second"},
		{ID: ""},
		{ID: "b"},
	}
	reg := NewRegionRegistry(regions)

	assert.Equal(t, 2, reg.Count())
	kept, exists := reg.GetByID("a")
	require.True(t, exists)
	assert.Equal(t, "first", kept.NameEn)
}

func TestRegionRegistry_GetByID(t *testing.T) {
	reg := NewRegionRegistry(DefaultRegions())

	for _, want := range reg.GetAll() {
		got, exists := reg.GetByID(want.ID)
		require.True(t, exists, "region %s should be retrievable", want.ID)
		assert.Equal(t, want, got)
	}

	_, exists := reg.GetByID("missing")
	assert.False(t, exists)
}

func TestRegionRegistry_GetAll_OrderAndIsolation(t *testing.T) {
	defaults := DefaultRegions()
	reg := NewRegionRegistry(defaults)

	all := reg.GetAll()
	require.Len(t, all, len(defaults))
	for i := range defaults {
		assert.Equal(t, defaults[i].ID, all[i].ID, "order must be preserved")
	}

	// Mutating the snapshot must not affect the registry.
	all[0].NameEn = "mutated"
	all[0].Sections[0].Content = "mutated"

	fresh, _ := reg.GetByID(all[0].ID)
	assert.NotEqual(t, "mutated", fresh.NameEn)
	assert.NotEqual(t, "mutated", fresh.Sections[0].Content)
}

func TestRegionRegistry_Replace(t *testing.T) {
	reg := NewRegionRegistry(DefaultRegions())

	region, _ := reg.GetByID("hippocampus")
	region.NameEn = "Updated Hippocampus"
	region.Sections = append(region.Sections, types.Section{
		ID: "notes", Title: "Notes", Images: []types.Image{},
	})

	assert.True(t, reg.Replace(region))

	got, exists := reg.GetByID("hippocampus")
	require.True(t, exists)
	assert.Equal(t, "Updated Hippocampus", got.NameEn)
	assert.Len(t, got.Sections, 6)
	assert.Equal(t, 7, reg.Count())
}

func TestRegionRegistry_Replace_UnknownID(t *testing.T) {
	reg := NewRegionRegistry(DefaultRegions())
	before := reg.GetAll()

	assert.False(t, reg.Replace(types.Region{ID: "nonexistent"}))
	assert.Equal(t, before, reg.GetAll())
}

func TestRegionRegistry_Replace_IsolatedFromCaller(t *testing.T) {
	reg := NewRegionRegistry(DefaultRegions())

	region, _ := reg.GetByID("cerebellum")
	require.True(t, reg.Replace(region))

	// Later mutations of the caller's value must not reach the registry.
	region.Sections[0].Content = "mutated after replace"

	got, _ := reg.GetByID("cerebellum")
	assert.NotEqual(t, "mutated after replace", got.Sections[0].Content)
}

func TestRegionRegistry_Watch(t *testing.T) {
	reg := NewRegionRegistry(DefaultRegions())
	ch := reg.Watch()

	region, _ := reg.GetByID("brainstem")
	region.NameEn = "Updated"
	require.True(t, reg.Replace(region))

	select {
	case event := <-ch:
		assert.Equal(t, EventTypeReplaced, event.Type)
		assert.Equal(t, "brainstem", event.Region.ID)
		assert.Equal(t, "Updated", event.Region.NameEn)
	default:
		t.Fatal("expected a replace event")
	}

	reg.Unwatch(ch)
	_, open := <-ch
	assert.False(t, open, "channel should be closed after Unwatch")
}
