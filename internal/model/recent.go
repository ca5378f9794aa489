package model

import "time"

// EntityType tags the kind of content behind a RecentEntry.
type EntityType string

const (
	EntityPost    EntityType = "post"
	EntityLine    EntityType = "line"
	EntityStation EntityType = "station"
	EntityProject EntityType = "project"
	EntityCity    EntityType = "city"
)

// RecentEntry is one item of the "recent activity" feed.
// It is rebuilt on every request and never persisted.
type RecentEntry struct {
	Type         EntityType `json:"type"`
	Title        string     `json:"title"`
	URL          string     `json:"url"`
	LastModified time.Time  `json:"last_modified"`
}

// DashboardStats summarizes content volume for the admin dashboard.
type DashboardStats struct {
	Posts    int `json:"posts_count"`
	Lines    int `json:"lines_count"`
	Stations int `json:"stations_count"`
	Projects int `json:"projects_count"`
}

// CityRelated is the content linked to a city on the cities page.
type CityRelated struct {
	City     City      `json:"city"`
	Lines    []Line    `json:"lines"`
	Stations []Station `json:"stations"`
	Projects []Project `json:"projects"`
}
