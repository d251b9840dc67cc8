package utils

import (
	"regexp"
	"strings"
)

var nonAlphanum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify dérive un slug URL-safe depuis un titre :
// minuscules, runs non alphanumériques remplacés par '-', tirets de bord retirés
func Slugify(title string) string {
	slug := nonAlphanum.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
