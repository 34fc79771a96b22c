package pantry

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/feastkit/basil/internal/recipe"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestPantry_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	custom := []recipe.Recipe{{ID: "r1", Title: "Family Stew", Custom: true}}
	if err := p.SetCustom(custom); err != nil {
		t.Fatalf("SetCustom: %v", err)
	}
	if _, err := p.ToggleFavorite("r1"); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}

	// fresh handle sees the persisted state
	p2, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := p2.Custom()
	if len(got) != 1 || got[0].Title != "Family Stew" {
		t.Errorf("Custom = %v", got)
	}
	if !p2.IsFavorite("r1") {
		t.Error("favorite lost across reopen")
	}
}

func TestPantry_MissingFileIsFreshPantry(t *testing.T) {
	t.Parallel()

	p, err := Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(p.Custom()) != 0 || len(p.Favorites()) != 0 {
		t.Error("fresh pantry not empty")
	}
}

func TestPantry_CorruptFileIsRecovered(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pantry.json"), []byte("{nope"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("Open with corrupt file: %v", err)
	}
	if len(p.Custom()) != 0 {
		t.Error("corrupt pantry produced recipes")
	}
	// and the next save replaces the corrupt file
	if err := p.SetCustom(nil); err != nil {
		t.Fatalf("SetCustom: %v", err)
	}
	if _, err := Open(dir, testLogger()); err != nil {
		t.Fatalf("reopen after save: %v", err)
	}
}

func TestPantry_ToggleFavorite(t *testing.T) {
	t.Parallel()

	p, err := Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	on, err := p.ToggleFavorite("a")
	if err != nil || !on {
		t.Fatalf("first toggle = %v, %v; want on", on, err)
	}
	if _, err := p.ToggleFavorite("b"); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	off, err := p.ToggleFavorite("a")
	if err != nil || off {
		t.Fatalf("second toggle = %v, %v; want off", off, err)
	}

	favs := p.Favorites()
	if len(favs) != 1 || favs[0] != "b" {
		t.Errorf("Favorites = %v, want [b]", favs)
	}
}

func TestPantry_Tombstones(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := p.MarkRemoved("builtin-1"); err != nil {
		t.Fatalf("MarkRemoved: %v", err)
	}
	if err := p.MarkRemoved("builtin-1"); err != nil {
		t.Fatalf("MarkRemoved twice: %v", err)
	}

	p2, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	removed := p2.Removed()
	if len(removed) != 1 || removed[0] != "builtin-1" {
		t.Errorf("Removed = %v, want [builtin-1]", removed)
	}
}

func TestPantry_AtomicWriteLeavesNoTempFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := p.SetCustom([]recipe.Recipe{{ID: "x", Title: "X", Custom: true}}); err != nil {
		t.Fatalf("SetCustom: %v", err)
	}
	if _, err := os.Stat(p.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestUIState_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := SaveUIState(dir, UIState{LastLocation: "/recipe/42"}); err != nil {
		t.Fatalf("SaveUIState: %v", err)
	}
	state := LoadUIState(dir, testLogger())
	if state.LastLocation != "/recipe/42" {
		t.Errorf("LastLocation = %q, want /recipe/42", state.LastLocation)
	}
}

func TestUIState_MissingAndCorrupt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if state := LoadUIState(dir, testLogger()); state.LastLocation != "" {
		t.Errorf("missing state produced %q", state.LastLocation)
	}

	if err := os.WriteFile(UIStatePath(dir), []byte("not json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if state := LoadUIState(dir, testLogger()); state.LastLocation != "" {
		t.Errorf("corrupt state produced %q", state.LastLocation)
	}
}

func TestSnapshotAndPrune(t *testing.T) {
	t.Parallel()

	p, err := Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	snapDir := t.TempDir()

	// distinct names are not guaranteed within a second; write extras by hand
	if _, err := p.Snapshot(snapDir); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	for _, stamp := range []string{"20240101-000000", "20240102-000000", "20240103-000000"} {
		path := filepath.Join(snapDir, "pantry-"+stamp+".json")
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	if err := PruneSnapshots(snapDir, 2); err != nil {
		t.Fatalf("PruneSnapshots: %v", err)
	}
	matches, err := filepath.Glob(filepath.Join(snapDir, "pantry-*.json"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("%d snapshots after prune, want 2", len(matches))
	}
}
