package integrationtest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	"github.com/randalmurphal/promptstream/config"
	pscontext "github.com/randalmurphal/promptstream/context"
	pserrors "github.com/randalmurphal/promptstream/errors"
	"github.com/randalmurphal/promptstream/stream"
	"github.com/randalmurphal/promptstream/testutil"
	"github.com/randalmurphal/promptstream/wildcard"
)

// wildcardExpander yields the values of the wildcard named by the template,
// in file order. Its sequences fail with ErrConcurrentModification once the
// wildcards are reloaded.
type wildcardExpander struct {
	wildcards *wildcard.Manager
}

func (e wildcardExpander) Expand(template string, _ stream.RandomSource) (stream.Sequence, error) {
	values, err := e.wildcards.Values(template)
	if err != nil {
		return nil, err
	}

	gen := e.wildcards.Generation()
	i := 0
	return stream.SequenceFunc(func() (string, error) {
		if e.wildcards.Generation() != gen {
			return "", pserrors.ErrConcurrentModification
		}
		if i >= len(values) {
			return "", pserrors.ErrExhausted
		}
		v := values[i]
		i++
		return v, nil
	}), nil
}

func newWildcardExpander(m *wildcard.Manager) stream.Expander {
	return wildcardExpander{wildcards: m}
}

// newDrawingExpander returns an expander whose unbounded sequences draw a
// random value of the named wildcard on every pull.
func newDrawingExpander(m *wildcard.Manager) stream.Expander {
	return stream.ExpanderFunc(func(template string, rng stream.RandomSource) (stream.Sequence, error) {
		values, err := m.Values(template)
		if err != nil {
			return nil, err
		}
		return stream.SequenceFunc(func() (string, error) {
			return values[rng.IntN(len(values))], nil
		}), nil
	})
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupProject creates a project folder holding a local config file and a
// wildcards folder with the given files. Returns the project path.
func setupProject(t *testing.T, localConfig string, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	if localConfig != "" {
		if err := os.WriteFile(filepath.Join(dir, ".promptstream.yaml"), []byte(localConfig), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	testutil.WriteFiles(t, filepath.Join(dir, wildcard.DirName), files)
	return dir
}

// resolveSettings resolves settings for a project without touching the
// user's global config or environment.
func resolveSettings(t *testing.T, projectDir string) config.Settings {
	t.Helper()

	cfg := config.DefaultResolverConfig()
	cfg.EnvPrefix = "PSITEST_"
	cfg.ProjectDir = projectDir
	cfg.ErrWriter = io.Discard

	resolver := config.NewResolverWithPaths(cfg, "",
		filepath.Join(projectDir, cfg.LocalConfigName),
		filepath.Join(projectDir, cfg.DotEnvName))

	settings, err := resolver.Resolve().Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	return settings
}

// setupServices builds services for a project.
func setupServices(t *testing.T, projectDir string) *pscontext.Services {
	t.Helper()

	services, err := pscontext.NewServices(pscontext.Config{
		Settings: resolveSettings(t, projectDir),
		BaseDir:  projectDir,
		Expander: newWildcardExpander,
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewServices: %v", err)
	}
	t.Cleanup(func() { _ = services.Close() })
	return services
}

// setupContext creates a flowgraph.Context with all services injected.
func setupContext(t *testing.T, services *pscontext.Services) flowgraph.Context {
	t.Helper()
	return flowgraph.NewContext(services.InjectAll(context.Background()))
}
