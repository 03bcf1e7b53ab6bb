package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/example/supertonic-assets/internal/assets"
	"github.com/example/supertonic-assets/internal/config"
)

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"fetch", "pack", "verify"}
	for _, name := range want {
		found := false

		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}

		if !found {
			t.Errorf("expected subcommand %q not found in root", name)
		}
	}
}

func TestNewRootCmd_HasPersistentConfigFlag(t *testing.T) {
	root := NewRootCmd()
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("expected --config persistent flag to be registered")
	}
}

func TestNewRootCmd_RegistersFetchFlags(t *testing.T) {
	root := NewRootCmd()

	knownFlags := []string{
		"dest", "work-dir", "output", "base-url", "release-url",
		"revision", "hf-token", "style", "force", "skip-release",
		"keep-work-dir", "log-level",
	}
	for _, name := range knownFlags {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag %q not registered", name)
		}
	}
}

func TestSetupLogger_DoesNotPanic(_ *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		setupLogger(level)
	}
}

func TestSetupLogger_InvalidLevelFallsBackToInfo(_ *testing.T) {
	// Should not panic on invalid level.
	setupLogger("not-a-level")
}

func TestRequireConfig_FailsWhenNotInitialized(t *testing.T) {
	origCfg, origLoaded := activeCfg, cfgLoaded

	t.Cleanup(func() { activeCfg, cfgLoaded = origCfg, origLoaded })

	activeCfg = config.Config{}
	cfgLoaded = false

	_, err := requireConfig()
	if err == nil {
		t.Fatal("expected error when config is not loaded")
	}
}

func TestRequireConfig_SucceedsWhenLoaded(t *testing.T) {
	origCfg, origLoaded := activeCfg, cfgLoaded

	t.Cleanup(func() { activeCfg, cfgLoaded = origCfg, origLoaded })

	activeCfg = config.Config{
		Paths: config.PathsConfig{Dest: "/some/dest"},
	}
	cfgLoaded = true

	got, err := requireConfig()
	if err != nil {
		t.Fatalf("requireConfig returned unexpected error: %v", err)
	}

	if got.Paths.Dest != "/some/dest" {
		t.Errorf("unexpected Dest: %q", got.Paths.Dest)
	}
}

func TestRequireConfig_AcceptsEmptyDest(t *testing.T) {
	origCfg, origLoaded := activeCfg, cfgLoaded

	t.Cleanup(func() { activeCfg, cfgLoaded = origCfg, origLoaded })

	// An explicitly empty --dest is still a loaded configuration.
	activeCfg = config.Config{}
	cfgLoaded = true

	if _, err := requireConfig(); err != nil {
		t.Fatalf("requireConfig rejected loaded config with empty dest: %v", err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"config error", &assets.ConfigError{Template: "x", Msg: "bad"}, exitConfigInvalid},
		{"wrapped config error", fmt.Errorf("asset fetch failed: %w", &assets.ConfigError{Template: "x", Msg: "bad"}), exitConfigInvalid},
		{"archive error", &assets.ArchiveError{Path: "out.tar.gz", Err: errors.New("disk full")}, exitArchiveFailed},
		{"plain error", errors.New("download failed"), exitFetchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d; want %d", tt.err, got, tt.want)
			}
		})
	}
}
