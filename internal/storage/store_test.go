package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/teleop/internal/robot"
)

func sampleTicks() []TickRecord {
	rec := NewRecorder()
	start := time.Unix(100, 0)
	on := true

	rec.OnTick(0, robot.InputSample{LeftY: 100}, robot.TickOutput{Drive: robot.DriveCommand{Left: 100, Right: 100}}, start)
	rec.OnTick(1, robot.InputSample{RightX: 100, PistonExtend: true},
		robot.TickOutput{Drive: robot.DriveCommand{Left: 80, Right: -80}, Piston: &on, Intake: 127},
		start.Add(20*time.Millisecond))
	return rec.Ticks()
}

func TestRecorder(t *testing.T) {
	ticks := sampleTicks()
	if len(ticks) != 2 {
		t.Fatalf("expected 2 ticks, got %d", len(ticks))
	}
	if ticks[0].Piston != PistonNone || ticks[1].Piston != PistonExtend {
		t.Errorf("unexpected piston columns %d %d", ticks[0].Piston, ticks[1].Piston)
	}
	if ticks[1].Ms != 20 {
		t.Errorf("expected 20ms offset, got %d", ticks[1].Ms)
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{
		Profile:  "competition",
		PeriodMs: 20,
		TurnGain: 0.8,
		Metrics:  map[string]float64{"drive_effort": 90},
	}, sampleTicks())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Profile != "competition" || meta.Ticks != 2 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["drive_effort"] != 90 {
		t.Errorf("expected drive effort 90, got %f", meta.Metrics["drive_effort"])
	}

	ticks, err := st.LoadTicks(runID)
	if err != nil {
		t.Fatalf("load ticks failed: %v", err)
	}
	want := sampleTicks()
	if len(ticks) != len(want) {
		t.Fatalf("expected %d ticks, got %d", len(want), len(ticks))
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Errorf("tick %d: expected %+v, got %+v", i, want[i], ticks[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "runs"))

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	first := time.Unix(1000, 0)
	if _, err := st.Save(RunMetadata{Profile: "b", Timestamp: first.Add(time.Second)}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save(RunMetadata{Profile: "a", Timestamp: first}, nil); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Profile != "a" {
		t.Errorf("expected oldest run first, got %s", runs[0].Profile)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{Profile: "test"}, sampleTicks())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "ticks.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestLoadTicksRejectsCorruptRows(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	runID, err := st.Save(RunMetadata{Profile: "test"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(st.TicksPath(runID), []byte("tick,ms,left_y,right_x,left,right,intake,piston\n1,2,x,4,5,6,7,8\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := st.LoadTicks(runID); err == nil {
		t.Error("expected error for non-numeric field")
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Profile: "test"}, sampleTicks())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(runID, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Profile != "test" {
		t.Errorf("expected profile test, got %s", data.Profile)
	}
	if got := data.Series["right"]; len(got) != 2 || got[1] != -80 {
		t.Errorf("unexpected right series %v", got)
	}
}

func TestSaveKeepsRunsInsideBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "runs")
	st := New(base)

	for i, profile := range []string{"../escape", "/etc/passwd", "..", "a/../../b", "", "left arm"} {
		runID, err := st.Save(RunMetadata{Profile: profile, Timestamp: time.Unix(int64(i+1), 0)}, sampleTicks())
		if err != nil {
			t.Fatalf("%q: save failed: %v", profile, err)
		}
		if runID != filepath.Base(runID) || strings.HasPrefix(runID, ".") {
			t.Errorf("%q: run id %q is not a single path element", profile, runID)
		}
		meta, err := st.Load(runID)
		if err != nil {
			t.Fatalf("%q: load failed: %v", profile, err)
		}
		if meta.Profile != profile {
			t.Errorf("expected profile %q preserved, got %q", profile, meta.Profile)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(base))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "runs" {
		t.Errorf("expected only the runs directory next to the store, got %v", entries)
	}
}

func TestSaveRejectsUnsafeRunID(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Save(RunMetadata{ID: "../outside", Profile: "test"}, sampleTicks()); err == nil {
		t.Error("expected error for run id outside the store")
	}
}
