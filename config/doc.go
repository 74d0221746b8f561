// Package config resolves prompt stream settings from layered sources.
//
// Precedence, highest first:
//  1. Overrides passed to ResolveWithFlags
//  2. Environment variables (PROMPTSTREAM_ prefix)
//  3. A .env file in the project root
//  4. Local config (.promptstream.yaml in the project root)
//  5. Global config (~/.config/promptstream/config.yaml)
//  6. Built-in defaults
//
// # Basic Usage
//
//	resolver := config.NewResolver(config.DefaultResolverConfig())
//	resolved := resolver.Resolve()
//	settings, err := resolved.Settings()
//	logger := settings.Logger(os.Stderr)
//
// Each resolved value records where it came from:
//
//	fmt.Println(resolved.Source(config.KeySeed)) // "env"
//
// # Keys
//
//   - wildcards_dir: folder holding wildcard files (default: ./wildcards)
//   - seed: initial seed; 0 leaves the random source time-seeded
//   - log_level: debug, info, warn, error
//   - log_format: text or json
//   - webhook_url: optional endpoint for stream failure events
//   - watch_wildcards: reload wildcard files when they change
package config
