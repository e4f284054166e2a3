package models

import "time"

// Rarity is the collectible tier of an artifact type.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityEpic     Rarity = "epic"
)

// Valid reports whether r is one of the known tiers.
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic:
		return true
	}
	return false
}

// ArtifactType describes a collectible threat category.
type ArtifactType struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Icon        string `yaml:"icon" json:"icon"`
	Description string `yaml:"description" json:"description"`
	Rarity      Rarity `yaml:"rarity" json:"rarity"`
}

// UnlockedArtifact is created the first time a threat tag is correctly
// identified at a site. (Type, Site) is unique within GameState.
type UnlockedArtifact struct {
	ID           string    `json:"id,omitempty"`
	Type         string    `json:"type"`
	Site         string    `json:"site"`
	Layer        int       `json:"layer"`
	Evidence     string    `json:"evidence"`
	DiscoveredAt time.Time `json:"discoveredAt"`
}
