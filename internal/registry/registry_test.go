package registry

import (
	"testing"

	"github.com/vovakirdan/tileblast/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string { return g.id }
func (g stubGame) Title() string { return "Stub " + g.id }
func (stubGame) Reset(core.RuntimeConfig) {}
func (stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (stubGame) Render(*core.Screen) {}
func (stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterListCreate(t *testing.T) {
	for _, id := range []string{"zz_stub", "aa_stub"} {
		Register(id, func() Game { return stubGame{id: id} })
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List() not sorted: %v", list)
		}
	}
	if !Exists("aa_stub") || Exists("missing") {
		t.Error("Exists() reports wrong membership")
	}

	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub" || g.Title() != "Stub zz_stub" {
		t.Errorf("created %s / %s", g.ID(), g.Title())
	}
	if _, err := Create("missing"); err == nil {
		t.Error("Create() of an unknown id should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_stub", func() Game { return stubGame{id: "dup_stub"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup_stub", func() Game { return stubGame{id: "dup_stub"} })
}
