package view

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ExcerptLength is the rune budget of StripHTML.
const ExcerptLength = 150

// DateLayout is how dates appear on pages.
const DateLayout = "02/01/2006"

// FuncMap is shared by every template set.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"stripHTML":   StripHTML,
		"formatDate":  FormatDate,
		"pageURL":     PageURL,
		"join":        Join,
		"safeHTML":    SafeHTML,
		"formatMoney": FormatMoney,
	}
}

// StripHTML extracts the text of an HTML fragment, collapses whitespace and
// truncates it to ExcerptLength runes followed by "...".
func StripHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	text := s
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= ExcerptLength {
		return text
	}
	return string([]rune(text)[:ExcerptLength]) + "..."
}

// FormatDate renders a date as dd/mm/yyyy; the zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// PageURL sets the page query parameter on base, keeping the rest of its query.
func PageURL(base string, page int) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// Join is strings.Join with template-friendly argument order.
func Join(items []string, sep string) string {
	return strings.Join(items, sep)
}

// SafeHTML marks admin-authored content as trusted markup.
func SafeHTML(s string) template.HTML {
	return template.HTML(s)
}

var money = message.NewPrinter(language.Spanish)

// FormatMoney renders a budget in euros with Spanish separators, e.g. "1.250.000,50 €".
func FormatMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return money.Sprintf("%.2f €", *v)
}
