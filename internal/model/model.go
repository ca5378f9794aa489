// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes; the only behavior is timestamp fallback.
package model

import "time"

// Timestamps is embedded by every persisted entity.
// UpdatedAt stays zero when the row never recorded a modification.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LastModified returns the update timestamp, falling back to creation time.
func (t Timestamps) LastModified() time.Time {
	if t.UpdatedAt.IsZero() {
		return t.CreatedAt
	}
	return t.UpdatedAt
}

// Post is a blog article.
type Post struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	IsPublished bool   `json:"is_published"`
	CategoryID  *int64 `json:"category_id"`
	Timestamps
}

// Page is a static page addressed by slug.
type Page struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Content     string `json:"content"`
	IsPublished bool   `json:"is_published"`
	Timestamps
}

// Line is a railway line.
type Line struct {
	ID           int64    `json:"id"`
	LineNumber   string   `json:"line_number"`
	Description  string   `json:"description"`
	Status       string   `json:"status"`     // active, cerrada
	GaugeType    *string  `json:"gauge_type"` // iberico, metrico, internacional
	CitiesServed []string `json:"cities_served"`
	CategoryID   *int64   `json:"category_id"`
	Timestamps
}

// Station is a railway station.
type Station struct {
	ID            int64    `json:"id"`
	StationCode   string   `json:"station_code"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Services      []string `json:"services"`
	Accessibility []string `json:"accessibility"`
	StationType   *string  `json:"station_type"` // principal, regional, local
	Province      *string  `json:"province"`
	CityID        *int64   `json:"city_id"`
	Timestamps
}

// Project is an infrastructure project.
type Project struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ProjectType string   `json:"project_type"`
	Budget      *float64 `json:"budget"`
	Timeline    *string  `json:"timeline"`
	Status      string   `json:"status"` // planning, construction, completed, suspended
	CategoryID  *int64   `json:"category_id"`
	CityID      *int64   `json:"city_id"`
	Timestamps
}

// Event is a dated railway event.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	EventTime   *string   `json:"event_time"`
	Location    string    `json:"location"`
	EventType   string    `json:"event_type"`
	CityID      *int64    `json:"city_id"`
	Timestamps
}

// City groups stations, projects and events geographically.
type City struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Region  string `json:"region"`
	Country string `json:"country"`
	Timestamps
}

// Category is a hierarchical taxonomy node for posts, lines and projects.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	ParentID    *int64  `json:"parent_id"`
	Timestamps
}

// Line status values.
const (
	LineStatusActive = "active"
	LineStatusClosed = "cerrada"
)

// Project status values.
const (
	ProjectStatusPlanning     = "planning"
	ProjectStatusConstruction = "construction"
	ProjectStatusCompleted    = "completed"
	ProjectStatusSuspended    = "suspended"
)

// DefaultCountry is applied to cities created without one.
const DefaultCountry = "Spain"
