package models

import (
	"math"
	"slices"
)

// Experience levels, lowest first.
const (
	LevelNovice      = "Novice Digger"
	LevelJunior      = "Junior Investigator"
	LevelExperienced = "Experienced Analyst"
	LevelSenior      = "Senior Researcher"
	LevelExpert      = "Expert Digger"
	LevelMaster      = "Master Archaeologist"
)

// LevelThreshold maps a minimum artifact count to a level name.
type LevelThreshold struct {
	MinArtifacts int
	Level        string
}

// ExperienceThresholds are ascending; the highest satisfied threshold wins.
var ExperienceThresholds = []LevelThreshold{
	{0, LevelNovice},
	{5, LevelJunior},
	{10, LevelExperienced},
	{15, LevelSenior},
	{20, LevelExpert},
	{25, LevelMaster},
}

// ExperienceLevelFor returns the level earned with the given artifact count.
func ExperienceLevelFor(artifacts int) string {
	level := LevelNovice
	for _, t := range ExperienceThresholds {
		if artifacts >= t.MinArtifacts {
			level = t.Level
		}
	}
	return level
}

// GameState is the persisted play-through state.
type GameState struct {
	ExperienceLevel   string             `json:"experienceLevel"`
	ArtifactsFound    int                `json:"artifactsFound"`
	SitesExcavated    int                `json:"sitesExcavated"`
	CurrentSite       string             `json:"currentSite"`
	CurrentLayer      int                `json:"currentLayer"`
	Discoveries       []Discovery        `json:"discoveries"`
	UnlockedArtifacts []UnlockedArtifact `json:"unlockedArtifacts"`
	CompletedSites    []string           `json:"completedSites"`
}

// DefaultGameState returns the state of a fresh game.
func DefaultGameState() GameState {
	return GameState{
		ExperienceLevel:   LevelNovice,
		CurrentLayer:      1,
		Discoveries:       []Discovery{},
		UnlockedArtifacts: []UnlockedArtifact{},
		CompletedSites:    []string{},
	}
}

// Clone returns a deep copy of s.
func (s GameState) Clone() GameState {
	c := s
	c.Discoveries = slices.Clone(s.Discoveries)
	c.UnlockedArtifacts = slices.Clone(s.UnlockedArtifacts)
	c.CompletedSites = slices.Clone(s.CompletedSites)
	return c
}

// HasArtifact reports whether an artifact of the given type was already
// unlocked at the named site.
func (s GameState) HasArtifact(artifactType, siteName string) bool {
	for _, a := range s.UnlockedArtifacts {
		if a.Type == artifactType && a.Site == siteName {
			return true
		}
	}
	return false
}

// Accuracy returns round(100 * correct / total) over ds, or 0 for an empty log.
func Accuracy(ds []Discovery) int {
	if len(ds) == 0 {
		return 0
	}
	correct := 0
	for _, d := range ds {
		if d.IsCorrect {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(ds))))
}
