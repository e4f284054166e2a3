package models

import "time"

// Excavation is one journal entry, written when a site is completed.
type Excavation struct {
	ID              string
	SiteID          string
	SiteName        string
	Layers          int
	Discoveries     int
	Correct         int
	FalsePositives  int
	Accuracy        int
	ArtifactsFound  int
	ExperienceLevel string
	CompletedAt     time.Time
}
