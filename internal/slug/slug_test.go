package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/railway-blog-service/internal/slug"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"A Coruña":                "a-coruna",
		"Málaga":                  "malaga",
		"  Alcalá de Henares  ":   "alcala-de-henares",
		"Línea C-1 / Cercanías":   "linea-c-1-cercanias",
		"San Sebastián--Donostia": "san-sebastian-donostia",
		"Noticias":                "noticias",
		"¿Qué pasa con el AVE?":   "que-pasa-con-el-ave",
		"":                        "",
		"---":                     "",
		"Lleida 2025":             "lleida-2025",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), in)
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, slug.IsNumeric("42"))
	assert.False(t, slug.IsNumeric("noticias"))
	assert.False(t, slug.IsNumeric(""))
	assert.False(t, slug.IsNumeric("4a"))
}
