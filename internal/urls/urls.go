package urls

import "strings"

// Repository is the project home, shown in the wizard footer.
const Repository = "https://github.com/muurk/research-agent"

// Troubleshooting covers discovery and connection problems.
const Troubleshooting = Repository + "#troubleshooting"

// Issues is where users report bugs.
const Issues = Repository + "/issues"

// Display strips the scheme for compact rendering.
func Display(url string) string {
	for _, prefix := range []string{"https://", "http://"} {
		if rest, ok := strings.CutPrefix(url, prefix); ok {
			return rest
		}
	}
	return url
}
