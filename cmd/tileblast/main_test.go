package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/tileblast/internal/registry"
)

func TestGameIDForMode(t *testing.T) {
	tests := []struct {
		mode string
		id   string
		ok   bool
	}{
		{"", "tileblast", true},
		{"moves", "tileblast", true},
		{"endless", "tileblast_endless", true},
		{"campaign", "", false},
	}
	for _, tc := range tests {
		id, ok := gameIDForMode(tc.mode)
		if id != tc.id || ok != tc.ok {
			t.Errorf("gameIDForMode(%q) = %q, %v; expected %q, %v", tc.mode, id, ok, tc.id, tc.ok)
		}
		if ok && !registry.Exists(id) {
			t.Errorf("mode %q maps to unregistered game %q", tc.mode, id)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"list": false, "play": false, "menu": false, "serve": false, "scores": false, "sim": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestListShowsModes(t *testing.T) {
	var buf bytes.Buffer
	listCmd.SetOut(&buf)
	defer listCmd.SetOut(nil)

	runList(listCmd, nil)
	out := buf.String()
	for _, want := range []string{"tileblast_endless", "TileBlast (Endless)", "play --mode"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestRuntimeConfigUsesFlags(t *testing.T) {
	oldFPS, oldSeed := flagFPS, flagSeed
	defer func() { flagFPS, flagSeed = oldFPS, oldSeed }()
	flagFPS, flagSeed = 30, 7

	cfg := runtimeConfig()
	if cfg.TickRate != 30 || cfg.Seed != 7 {
		t.Errorf("runtimeConfig() = %+v", cfg)
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		t.Errorf("screen size %dx%d", cfg.ScreenW, cfg.ScreenH)
	}
}
