package usecase

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so a term containing % or _ only
// matches the literal text. Repos embed the result with ESCAPE '\\'.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// LikePattern turns a raw search term into a case-folded substring pattern,
// or "" when the term is blank (meaning: no filter).
func LikePattern(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return ""
	}
	return "%" + EscapeLike(strings.ToLower(term)) + "%"
}
