package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern wraps a user-supplied term into a substring pattern with wildcards escaped.
// Backends must pair it with ESCAPE '\'.
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}

// RecencyOrder sorts rows by last modification with deterministic tie-breakers.
const RecencyOrder = "COALESCE(updated_at, created_at) DESC, created_at DESC, id DESC"
