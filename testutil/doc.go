// Package testutil provides fakes and helpers for testing prompt streams.
//
// Fakes:
//   - Expander: configurable stream.Expander (finite, random, failing, panicking)
//   - RecordingNotifier: notify.Notifier that keeps every event
//
// Helpers:
//   - WriteFiles / SetupWildcardDir: build wildcard folders on disk
//   - LoadFixture, TempFile: testdata access
//   - TestContext: contexts canceled at test end
package testutil
