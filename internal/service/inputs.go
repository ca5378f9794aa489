package service

import (
	"strings"

	"github.com/maxviazov/railway-blog-service/internal/model"
)

// PostInput is the full set of writable post fields. A nil IsPublished means published.
type PostInput struct {
	Title       string `json:"title" form:"title" validate:"required,max=255"`
	Content     string `json:"content" form:"content" validate:"required"`
	Author      string `json:"author" form:"author" validate:"required,max=100"`
	IsPublished *bool  `json:"is_published" form:"is_published"`
	CategoryID  *int64 `json:"category_id" form:"category_id"`
}

// PostPatch carries only the fields a client wants to change.
type PostPatch struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Author      *string `json:"author"`
	IsPublished *bool   `json:"is_published"`
	CategoryID  *int64  `json:"category_id"`
}

type PageInput struct {
	Title       string `json:"title" form:"title" validate:"required,max=255"`
	Slug        string `json:"slug" form:"slug" validate:"max=255"`
	Content     string `json:"content" form:"content"`
	IsPublished *bool  `json:"is_published" form:"is_published"`
}

type LineInput struct {
	LineNumber   string   `json:"line_number" form:"line_number" validate:"required,max=50"`
	Description  string   `json:"description" form:"description"`
	Status       string   `json:"status" form:"status" validate:"omitempty,oneof=active cerrada"`
	GaugeType    *string  `json:"gauge_type" form:"gauge_type" validate:"omitempty,oneof=iberico metrico internacional"`
	CitiesServed []string `json:"cities_served" form:"cities_served"`
	CategoryID   *int64   `json:"category_id" form:"category_id"`
}

type StationInput struct {
	StationCode   string   `json:"station_code" form:"station_code" validate:"required,max=20"`
	Name          string   `json:"name" form:"name" validate:"required,max=100"`
	Address       string   `json:"address" form:"address"`
	Services      []string `json:"services" form:"services"`
	Accessibility []string `json:"accessibility" form:"accessibility"`
	StationType   *string  `json:"station_type" form:"station_type" validate:"omitempty,oneof=principal regional local"`
	Province      *string  `json:"province" form:"province" validate:"omitempty,max=100"`
	CityID        *int64   `json:"city_id" form:"city_id"`
}

type ProjectInput struct {
	Title       string   `json:"title" form:"title" validate:"required,max=255"`
	Description string   `json:"description" form:"description"`
	ProjectType string   `json:"project_type" form:"project_type" validate:"max=50"`
	Budget      *float64 `json:"budget" form:"budget" validate:"omitempty,gte=0"`
	Timeline    *string  `json:"timeline" form:"timeline" validate:"omitempty,max=100"`
	Status      string   `json:"status" form:"status" validate:"omitempty,oneof=planning construction completed suspended"`
	CategoryID  *int64   `json:"category_id" form:"category_id"`
	CityID      *int64   `json:"city_id" form:"city_id"`
}

// EventInput takes dates as strings so JSON and HTML forms share one layout.
type EventInput struct {
	Title       string  `json:"title" form:"title" validate:"required,max=255"`
	Description string  `json:"description" form:"description"`
	EventDate   string  `json:"event_date" form:"event_date" validate:"required,datetime=2006-01-02"`
	EventTime   *string `json:"event_time" form:"event_time" validate:"omitempty,datetime=15:04"`
	Location    string  `json:"location" form:"location" validate:"max=255"`
	EventType   string  `json:"event_type" form:"event_type" validate:"max=50"`
	CityID      *int64  `json:"city_id" form:"city_id"`
}

type CityInput struct {
	Name    string `json:"name" form:"name" validate:"required,max=100"`
	Slug    string `json:"slug" form:"slug" validate:"max=100"`
	Region  string `json:"region" form:"region" validate:"max=100"`
	Country string `json:"country" form:"country" validate:"max=100"`
}

type CategoryInput struct {
	Name        string  `json:"name" form:"name" validate:"required,max=100"`
	Slug        string  `json:"slug" form:"slug" validate:"max=100"`
	Description *string `json:"description" form:"description"`
	ParentID    *int64  `json:"parent_id" form:"parent_id"`
}

// projectStatusAliases maps the public filter vocabulary onto stored statuses.
var projectStatusAliases = map[string]string{
	"cancelado":  model.ProjectStatusSuspended,
	"en-marcha":  model.ProjectStatusConstruction,
	"en-estudio": model.ProjectStatusPlanning,
	"actual":     model.ProjectStatusConstruction,
}

// NormalizeProjectStatus resolves aliases; unknown values pass through lowercased.
func NormalizeProjectStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := projectStatusAliases[s]; ok {
		return v
	}
	return s
}

var lineStatusAliases = map[string]string{
	"activa": model.LineStatusActive,
	"closed": model.LineStatusClosed,
}

// NormalizeLineStatus resolves aliases; unknown values pass through lowercased.
func NormalizeLineStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := lineStatusAliases[s]; ok {
		return v
	}
	return s
}

var gaugeAliases = map[string]string{
	"ibérico": "iberico",
	"métrico": "metrico",
}

// NormalizeGauge lowercases and strips the accented spellings used in copy.
func NormalizeGauge(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := gaugeAliases[s]; ok {
		return v
	}
	return s
}
