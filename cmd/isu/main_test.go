package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/ewl/compiler/load"
	"github.com/syssam/ewl/server"
)

func TestParseLevel(t *testing.T) {
	l, err := parseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
	l, err = parseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)
	_, err = parseLevel("loud")
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, load.FileName, configPath(nil))
	assert.Equal(t, "x.yaml", configPath([]string{"x.yaml"}))
}

func TestConfigurator(t *testing.T) {
	t.Run("Nop", func(t *testing.T) {
		c, err := (&options{}).configurator()
		require.NoError(t, err)
		assert.Equal(t, server.Nop{}, c)
	})
	t.Run("StartWithoutConfigure", func(t *testing.T) {
		_, err := (&options{serverStart: "start"}).configurator()
		assert.Error(t, err)
	})
	t.Run("Locked", func(t *testing.T) {
		c, err := (&options{serverConfigure: "appcmd set config", serverStart: "net start w3svc"}).configurator()
		require.NoError(t, err)
		assert.IsType(t, &server.Locked{}, c)
	})
	t.Run("BlankCommand", func(t *testing.T) {
		_, err := (&options{serverConfigure: "  "}).configurator()
		assert.Error(t, err)
	})
}

func TestCommand(t *testing.T) {
	c, err := command("appcmd set config /section:x")
	require.NoError(t, err)
	assert.Equal(t, "appcmd", c.Name)
	assert.Equal(t, []string{"set", "config", "/section:x"}, c.Args)
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"update-dependent-logic", "watch"}, names)

	root.SetArgs([]string{"update", "--log-level", "loud", filepath.Join(t.TempDir(), "missing.yaml")})
	root.SetErr(io.Discard)
	assert.ErrorContains(t, root.Execute(), "invalid log level")
}

func TestUpdateMissingConfig(t *testing.T) {
	err := (&options{}).run(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, load.FileName)
	require.NoError(t, os.WriteFile(path, []byte("name: a\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runs := make(chan struct{}, 4)
	done := make(chan error, 1)
	n := 0
	go func() {
		done <- watch(ctx, path, slog.New(slog.NewTextHandler(io.Discard, nil)), func(context.Context) error {
			n++
			runs <- struct{}{}
			if n == 1 {
				return errors.New("first run fails")
			}
			return nil
		})
	}()

	wait := func() {
		t.Helper()
		select {
		case <-runs:
		case <-time.After(5 * time.Second):
			t.Fatal("run not triggered")
		}
	}
	wait()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("name: b\n"), 0o644))
	wait()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
