package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLog(t *testing.T) {
	// must not panic in any combination
	setupLog(false, false)
	setupLog(true, false)
	setupLog(false, true)
	setupLog(true, true, "secret")
}

func TestRun_BadConfig(t *testing.T) {
	err := run(context.Background(), &Opts{Config: "/non/existent/config.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRun_StartsAndStops(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")
	configContent := `
server:
  listen: "127.0.0.1:0"
database:
  dsn: "file:` + filepath.Join(tmpDir, "test.db") + `?cache=shared&mode=rwc"
schedule:
  update_interval: 60
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, &Opts{Config: configPath}) }()

	time.Sleep(300 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not stop")
	}
}
