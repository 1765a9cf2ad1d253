// Package testutil provides a harness that runs the whole application
// against input files written to a temporary directory.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/simforge/internal/app"
	"github.com/specialistvlad/simforge/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a harness run.
type HarnessResult struct {
	// Output holds everything the app wrote: logs and console output.
	Output string
	Err    error
	App    *app.App
}

// Option adjusts the configuration before the app is created.
type Option func(*app.Config)

// RunSimulation writes files into a temporary directory and runs the app on
// the file named input.
func RunSimulation(t *testing.T, files map[string]string, input string, opts ...Option) *HarnessResult {
	t.Helper()
	return RunSimulationWithModules(context.Background(), t, files, input, nil, opts...)
}

// RunSimulationWithModules is RunSimulation with an explicit context and
// module list. A nil module list registers the core modules.
func RunSimulationWithModules(ctx context.Context, t *testing.T, files map[string]string, input string, mods []registry.Module, opts ...Option) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg := app.Config{
		InputPath: filepath.Join(tmpDir, input),
		LogLevel:  "debug",
		LogFormat: "text",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}

	var testApp *app.App
	var runErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("application panicked | %v", r)
			}
		}()
		testApp, runErr = app.New(out, appConfig, mods...)
		if runErr != nil {
			return
		}
		runErr = testApp.Run(ctx)
	}()

	if os.Getenv("SIMFORGE_TEST_LOGS") == "true" {
		t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
	}

	return &HarnessResult{
		Output: out.String(),
		Err:    runErr,
		App:    testApp,
	}
}
