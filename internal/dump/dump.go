// Package dump writes result files into the output directory under
// timestamped names such as deeplinks_20250315_142501.json.
package dump

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const stampLayout = "20060102_150405"

// Dir is a flat directory of dumps
type Dir struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

func New(path string) *Dir {
	if path == "" {
		path = "results"
	}
	return &Dir{path: path, now: time.Now}
}

func (d *Dir) Path() string { return d.path }

// JSON writes v indented as {prefix}_{stamp}.json and returns the file path
func (d *Dir) JSON(prefix string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return d.Write(prefix, "json", append(data, '\n'))
}

// Write stores data as {prefix}_{stamp}.{ext}. A name taken within the same
// second gets a numeric suffix.
func (d *Dir) Write(prefix, ext string, data []byte) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	base := fmt.Sprintf("%s_%s", prefix, d.now().Format(stampLayout))
	name := filepath.Join(d.path, base+"."+ext)
	for i := 1; exists(name); i++ {
		name = filepath.Join(d.path, fmt.Sprintf("%s_%d.%s", base, i, ext))
	}

	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}

// List returns the dumps with the given prefix, oldest first
func (d *Dir) List(prefix string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries, err := os.ReadDir(d.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix+"_") {
			continue
		}
		out = append(out, filepath.Join(d.path, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
