package models

import "time"

// FeatureStatus is the lifecycle stage of a roadmap feature
type FeatureStatus string

const (
	StatusPlanned     FeatureStatus = "Planned"
	StatusInProgress  FeatureStatus = "In Progress"
	StatusUnderReview FeatureStatus = "Under Review"
	StatusReleased    FeatureStatus = "Released"
)

// FeatureStatuses lists every status in display order
var FeatureStatuses = []FeatureStatus{
	StatusInProgress,
	StatusUnderReview,
	StatusPlanned,
	StatusReleased,
}

// Valid reports whether s is one of the known statuses
func (s FeatureStatus) Valid() bool {
	for _, known := range FeatureStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// RoadmapFeature is a single entry on the public roadmap
type RoadmapFeature struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      FeatureStatus `json:"status"`
	Upvotes     int           `json:"upvotes"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
