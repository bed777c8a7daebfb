package dump

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedDir(t *testing.T) *Dir {
	d := New(filepath.Join(t.TempDir(), "results"))
	d.now = func() time.Time { return time.Date(2025, 3, 15, 14, 25, 1, 0, time.UTC) }
	return d
}

func TestDir_JSON(t *testing.T) {
	d := fixedDir(t)

	path, err := d.JSON("deeplinks", []map[string]string{{"id": "a"}})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if filepath.Base(path) != "deeplinks_20250315_142501.json" {
		t.Errorf("unexpected name: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var got []map[string]string
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("dump is not json: %v", err)
	}
	if len(got) != 1 || got[0]["id"] != "a" {
		t.Errorf("unexpected content: %s", raw)
	}
}

func TestDir_SameSecondSuffix(t *testing.T) {
	d := fixedDir(t)

	first, _ := d.Write("flights", "md", []byte("# one"))
	second, err := d.Write("flights", "md", []byte("# two"))
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if first == second {
		t.Fatal("second dump overwrote the first")
	}
	if filepath.Base(second) != "flights_20250315_142501_1.md" {
		t.Errorf("unexpected name: %s", second)
	}
}

func TestDir_List(t *testing.T) {
	d := fixedDir(t)

	if got, err := d.List("flights"); err != nil || len(got) != 0 {
		t.Fatalf("missing dir should list nothing, got %v %v", got, err)
	}

	_, _ = d.Write("flights", "md", []byte("a"))
	_, _ = d.Write("flights", "md", []byte("b"))
	_, _ = d.JSON("deeplinks", []string{})

	got, err := d.List("flights")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 flight dumps, got %v", got)
	}
	if filepath.Base(got[0]) != "flights_20250315_142501.md" {
		t.Errorf("expected oldest first, got %v", got)
	}
}

func TestNew_DefaultPath(t *testing.T) {
	if New("").Path() != "results" {
		t.Error("empty path should default to results")
	}
}
