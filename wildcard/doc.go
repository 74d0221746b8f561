// Package wildcard manages the wildcard files that template expanders draw from.
//
// A wildcard is a named list of values. Names are slash-separated paths
// relative to a wildcards folder, without the file extension, and are matched
// case-insensitively.
//
// File formats:
//   - .txt: one value per line; blank lines and lines starting with # are skipped
//   - .yaml, .yml, .json: nested maps of lists; each list becomes a wildcard
//     named by the file path plus the map keys leading to it
//
// For example, a folder holding
//
//	colors.txt          -> "colors"
//	animals/birds.txt   -> "animals/birds"
//	styles.yaml         -> "styles/painting", "styles/photo/film"
//
// Core types:
//   - Manager: Loads, caches, and looks up wildcards from search folders
//
// Manager does not parse templates. Expanders consume it through Values.
//
// Example usage:
//
//	dir, err := wildcard.FindOrCreateDir(installDir)
//	m := wildcard.NewManager(wildcard.Config{Dirs: []string{dir}})
//	colors, err := m.Values("colors")
//	_ = m.Watch(ctx) // reload on change
package wildcard
