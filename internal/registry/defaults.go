package registry

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/allenzhu312/Brain/internal/types"
)

//go:embed defaults.yaml
var defaultRegionsYAML []byte

// DefaultRegions returns the compiled-in default region set: the seven
// canonical structures, each seeded with the standard document sections.
// Every call returns a fresh deep copy.
func DefaultRegions() []types.Region {
	var regions []types.Region
	if err := yaml.Unmarshal(defaultRegionsYAML, &regions); err != nil {
		// The asset is embedded at build time; failing to parse it is a
		// programmer error, not a runtime condition.
		panic(fmt.Sprintf("registry: invalid embedded defaults: %v", err))
	}
	NormalizeRegions(regions)
	return regions
}

// NormalizeRegions runs the load-boundary normalization over a restored
// region list: absent section and image lists become empty lists so that
// display and editing never see nil.
func NormalizeRegions(regions []types.Region) {
	for i := range regions {
		regions[i].Normalize()
	}
}
