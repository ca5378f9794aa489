package view

import "github.com/maxviazov/railway-blog-service/internal/pagination"

// PageLink is one entry of a rendered pager.
type PageLink struct {
	Number  int
	URL     string
	Current bool
	Gap     bool
}

// Pager is a paginator resolved into links for one listing URL.
type Pager struct {
	TotalPages int
	PrevURL    string
	NextURL    string
	Links      []PageLink
}

// NewPager resolves p against base, e.g. "/search?q=ave".
func NewPager(p *pagination.Paginator, base string) Pager {
	out := Pager{TotalPages: p.TotalPages}
	if p.Prev != nil {
		out.PrevURL = PageURL(base, *p.Prev)
	}
	if p.Next != nil {
		out.NextURL = PageURL(base, *p.Next)
	}
	for item := range p.IterPages() {
		if item.Gap {
			out.Links = append(out.Links, PageLink{Gap: true})
			continue
		}
		out.Links = append(out.Links, PageLink{
			Number:  item.Number,
			URL:     PageURL(base, item.Number),
			Current: item.Number == p.Page,
		})
	}
	return out
}
