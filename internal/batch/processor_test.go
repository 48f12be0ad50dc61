package batch

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"anim-loc-baker/internal/capture"
	"anim-loc-baker/internal/clone"
	"anim-loc-baker/internal/scene"
)

func loadRig(t *testing.T) *capture.Scene {
	t.Helper()
	s, err := capture.Load(filepath.Join("..", "capture", "testdata", "rig.yaml"))
	if err != nil {
		t.Fatalf("load capture: %v", err)
	}
	return s
}

func TestRunKeepsInputOrder(t *testing.T) {
	src := loadRig(t)
	objects := []string{"shoulder", "hand", "foot"}

	results := Run(Config{Options: clone.DefaultOptions(), Workers: 3}, src, objects)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		if r.Object != objects[i] {
			t.Errorf("results[%d].Object = %q, want %q", i, r.Object, objects[i])
		}
	}

	shoulder, hand, foot := results[0], results[1], results[2]
	if shoulder.Success || len(shoulder.Warnings) != 1 || !strings.Contains(shoulder.Error, "no sample") {
		t.Errorf("shoulder = %+v, want failure with a no-keys warning", shoulder)
	}
	if foot.Success || !strings.Contains(foot.Error, "unknown object") {
		t.Errorf("foot = %+v, want unknown object failure", foot)
	}

	if !hand.Success {
		t.Fatalf("hand failed: %s", hand.Error)
	}
	if hand.Samples != 2 {
		t.Errorf("hand samples = %d, want 2", hand.Samples)
	}
	tx := hand.Locator.Keys[scene.TranslateY]
	if len(tx) != 2 || math.Abs(tx[0].Value-22) > 1e-12 || math.Abs(tx[1].Value-23) > 1e-12 {
		t.Errorf("hand translateY = %v, want 22 then 23", tx)
	}
	rz := hand.Locator.Keys[scene.RotateZ]
	if len(rz) != 2 || math.Abs(rz[0].Value-90) > 1e-9 {
		t.Errorf("hand rotateZ = %v, want 90", rz)
	}
}

func TestRunWithManyWorkers(t *testing.T) {
	src := loadRig(t)
	objects := make([]string, 50)
	for i := range objects {
		objects[i] = "hand"
	}
	results := Run(Config{Options: clone.DefaultOptions(), Workers: 8}, src, objects)
	for i, r := range results {
		if !r.Success || r.Samples != 2 {
			t.Fatalf("results[%d] = %+v", i, r)
		}
	}
}

func TestCommitAndManifest(t *testing.T) {
	src := loadRig(t)
	results := Run(Config{Options: clone.DefaultOptions(), Workers: 2}, src, []string{"hand", "foot", "hand"})

	out := capture.NewOutput(src.Has)
	if err := Commit(out, results); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if got := results[0].Locator.Name; got != "hand_loc" {
		t.Errorf("first locator = %q, want hand_loc", got)
	}
	if got := results[2].Locator.Name; got != "hand_loc1" {
		t.Errorf("second locator = %q, want hand_loc1", got)
	}
	if n := len(out.Locators()); n != 2 {
		t.Errorf("sink holds %d locators, want 2", n)
	}

	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := WriteManifest(path, results, map[string]string{"hand": "previews/hand.webp"}); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("manifest has %d entries, want 3", len(entries))
	}
	if entries[0].Order != "zyx" || entries[0].Preview != "previews/hand.webp" || entries[0].Samples != 2 {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Locator != "" || entries[1].Error == "" {
		t.Errorf("entries[1] = %+v, want error entry", entries[1])
	}
}
