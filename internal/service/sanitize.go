package service

import "github.com/microcosm-cc/bluemonday"

// htmlSanitizer strips unsafe markup from rich-text fields before storage.
// UGCPolicy keeps the formatting tags the dashboard editor produces while
// dropping scripts and event handlers.
var htmlSanitizer = bluemonday.UGCPolicy()

func sanitizeHTML(s string) string {
	return htmlSanitizer.Sanitize(s)
}
