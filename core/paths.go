// Package core has the classification, scoring and baseline logic for prgauge.
package core

import "strings"

// manifestFiles is the fixed set of well-known dependency manifest and
// lockfile names, matched case-insensitively against the full path.
var manifestFiles = map[string]struct{}{
	"package.json":      {},
	"package-lock.json": {},
	"yarn.lock":         {},
	"pnpm-lock.yaml":    {},
	"requirements.txt":  {},
	"poetry.lock":       {},
}

// IsDocsPath reports whether the path is documentation.
func IsDocsPath(path string) bool {
	p := strings.ToLower(path)
	return strings.HasPrefix(p, "docs/") ||
		strings.HasSuffix(p, ".md") ||
		strings.HasPrefix(p, "readme")
}

// IsInfraPath reports whether the path is infrastructure or configuration.
func IsInfraPath(path string) bool {
	p := strings.ToLower(path)
	return strings.HasPrefix(p, ".github/") ||
		p == "dockerfile" ||
		strings.HasPrefix(p, "terraform/") ||
		strings.HasSuffix(p, ".yml") ||
		strings.HasSuffix(p, ".yaml") ||
		strings.HasSuffix(p, ".tf")
}

// IsCorePath reports whether the path lives under a core source tree.
func IsCorePath(path string) bool {
	p := strings.ToLower(path)
	return strings.HasPrefix(p, "src/") ||
		strings.HasPrefix(p, "lib/") ||
		strings.HasPrefix(p, "app/")
}

// IsTestPath reports whether the path is a test file.
func IsTestPath(path string) bool {
	p := strings.ToLower(path)
	return strings.HasPrefix(p, "tests/") ||
		strings.HasPrefix(p, "__tests__/") ||
		strings.Contains(p, "/__tests__/")
}

// IsManifestPath reports whether the path is a dependency manifest or lockfile.
func IsManifestPath(path string) bool {
	_, ok := manifestFiles[strings.ToLower(path)]
	return ok
}
