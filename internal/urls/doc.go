// Package urls provides centralized constants for the project URLs shown to
// users, so they can be updated in one place before release.
//
// Usage:
//
//	import "github.com/muurk/research-agent/internal/urls"
//
//	fmt.Printf("Report problems at: %s\n", urls.Issues)
package urls
