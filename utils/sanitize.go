package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips all HTML from externally supplied text (titles, captions,
// admin form fields) before it reaches the catalog.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
