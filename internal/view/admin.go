package view

// Field is one input of the generic admin form.
type Field struct {
	Name     string
	Label    string
	Type     string // text, textarea, number, date, time, checkbox, select
	Value    string
	Checked  bool
	Required bool
	Help     string
	Error    string
	Options  []Option
}

// Option is one choice of a select field.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Row is one line of an admin listing.
type Row struct {
	ID        int64
	Label     string
	Detail    string
	PublicURL string
	EditURL   string
	DeleteURL string
}

// Kind names an admin section for navigation.
type Kind struct {
	Path    string
	Heading string
}

// Choices builds select options from values, marking current as selected.
// A leading empty option is added when blank is non-empty.
func Choices(current, blank string, values ...string) []Option {
	out := make([]Option, 0, len(values)+1)
	if blank != "" {
		out = append(out, Option{Value: "", Label: blank, Selected: current == ""})
	}
	for _, v := range values {
		out = append(out, Option{Value: v, Label: v, Selected: v == current})
	}
	return out
}
