// Package pagination turns a current page and a page count into navigation
// metadata and a compact page-number listing for templates and the JSON API.
// It knows nothing about the underlying data.
package pagination

import (
	"errors"
	"iter"
	"math"
	"slices"
)

// ErrInvalidPageSize is returned when a paginator is built with a non-positive page size.
var ErrInvalidPageSize = errors.New("pagination: page size must be positive")

// Window sizes used by IterPages.
const (
	leftEdge     = 2
	leftCurrent  = 2
	rightCurrent = 3
	rightEdge    = 2
)

// PageItem is a single element of the page listing: a page number or a gap marker.
type PageItem struct {
	Number int  `json:"number,omitempty"`
	Gap    bool `json:"gap,omitempty"`
}

// Paginator holds the page state for one request.
// Page may exceed TotalPages; callers are not required to clamp it.
type Paginator struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	PerPage    int  `json:"per_page"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
	Prev       *int `json:"prev_num"`
	Next       *int `json:"next_num"`
}

// New builds a Paginator. Only the page size is validated.
func New(page, totalPages, perPage int) (*Paginator, error) {
	if perPage <= 0 {
		return nil, ErrInvalidPageSize
	}
	if totalPages < 0 {
		totalPages = 0
	}
	p := &Paginator{
		Page:       page,
		TotalPages: totalPages,
		PerPage:    perPage,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if p.HasPrev {
		prev := page - 1
		p.Prev = &prev
	}
	if p.HasNext {
		next := page + 1
		p.Next = &next
	}
	return p, nil
}

// IterPages yields page numbers with gap markers between non-contiguous runs.
// Small listings (up to nine pages) are returned whole. The sequence is pure and
// can be ranged over any number of times.
func (p *Paginator) IterPages() iter.Seq[PageItem] {
	page, total := p.Page, p.TotalPages
	return func(yield func(PageItem) bool) {
		if total <= leftEdge+leftCurrent+rightCurrent+rightEdge {
			for n := 1; n <= total; n++ {
				if !yield(PageItem{Number: n}) {
					return
				}
			}
			return
		}
		last := 0
		for n := 1; n <= total; n++ {
			inWindow := n > page-leftCurrent-1 && n < page+rightCurrent
			if n > leftEdge && !inWindow && n <= total-rightEdge {
				continue
			}
			if last+1 != n {
				if !yield(PageItem{Gap: true}) {
					return
				}
			}
			if !yield(PageItem{Number: n}) {
				return
			}
			last = n
		}
	}
}

// Pages collects IterPages into a slice.
func (p *Paginator) Pages() []PageItem {
	return slices.Collect(p.IterPages())
}

// TotalPages returns ceil(count / perPage), or 0 for non-positive inputs.
func TotalPages(count, perPage int) int {
	if count <= 0 || perPage <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

// MaxOffset caps row offsets; pages past it read as beyond the end.
const MaxOffset = math.MaxInt32

// Offset converts a 1-based page number into a row offset, saturating at
// MaxOffset instead of overflowing.
func Offset(page, perPage int) int {
	if page < 1 || perPage <= 0 {
		return 0
	}
	if page-1 > MaxOffset/perPage {
		return MaxOffset
	}
	return (page - 1) * perPage
}
