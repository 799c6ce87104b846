package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/polydec"
	"github.com/gogpu/polydec/internal/meshio"
)

// run executes the command tree with isolated settings.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{
		"POLYDEC_TARGET_REDUCTION", "POLYDEC_PRECISION", "POLYDEC_STRATEGY",
		"POLYDEC_WORKERS", "POLYDEC_SCHEDULER", "POLYDEC_MERGE",
		"POLYDEC_MAX_OUTPUT_POINTS", "POLYDEC_LOG_FILE", "POLYDEC_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	orig := polydec.Logger()
	t.Cleanup(func() { polydec.SetLogger(orig) })

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// lineDoc returns a document with n collinear points on one line.
func lineDoc(n int) string {
	var pts, ids []string
	for i := range n {
		pts = append(pts, fmt.Sprintf("[%d, 0]", i))
		ids = append(ids, fmt.Sprint(i))
	}
	return fmt.Sprintf("points: [%s]\nlines: [[%s]]\n", strings.Join(pts, ", "), strings.Join(ids, ", "))
}

func writeInput(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecimateFiles(t *testing.T) {
	in := writeInput(t, lineDoc(10))
	dir := t.TempDir()
	out := filepath.Join(dir, "out.yaml")
	png := filepath.Join(dir, "preview.png")

	_, stderr, err := run(t, "", "decimate", in, "-o", out, "--target", "0.5", "--preview", png)
	if err != nil {
		t.Fatalf("decimate: %v", err)
	}
	m, err := meshio.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if m.NumPoints() != 5 {
		t.Errorf("output has %d points, want 5", m.NumPoints())
	}
	if _, err := os.Stat(png); err != nil {
		t.Errorf("preview not written: %v", err)
	}
	if want := "points:     10 -> 5 (removed 5, 50.0% of 50.0% requested)"; !strings.Contains(stderr, want) {
		t.Errorf("summary %q lacks %q", stderr, want)
	}
}

func TestDecimateStdinToJSON(t *testing.T) {
	stdout, stderr, err := run(t, lineDoc(4), "decimate", "--format", "json", "-q", "--target", "1")
	if err != nil {
		t.Fatal(err)
	}
	if stderr != "" {
		t.Errorf("quiet run printed %q", stderr)
	}
	var doc struct {
		Points [][]float64 `json:"points"`
		Lines  [][]int     `json:"lines"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if len(doc.Points) != 2 || len(doc.Lines) != 1 {
		t.Errorf("got %d points %d lines, want 2 and 1", len(doc.Points), len(doc.Lines))
	}
}

func TestDecimateVerboseLogs(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "polydec.log")
	_, stderr, err := run(t, lineDoc(6), "decimate", "-q", "-v", "--log-file", logFile, "--target", "0.5")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "decimation complete") {
		t.Errorf("stderr lacks debug record:\n%s", stderr)
	}
	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"polydec: decimation complete"`) {
		t.Errorf("log file lacks JSON record:\n%s", data)
	}
}

func TestDecimateGroupsLargeCounts(t *testing.T) {
	_, stderr, err := run(t, lineDoc(2000), "decimate", "--target", "0.5", "--format", "yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "2,000 -> 1,000") {
		t.Errorf("summary %q should group digits", stderr)
	}
}

func TestDecimateConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "polydec.yaml")
	if err := os.WriteFile(cfg, []byte("target_reduction: 0.5\nscheduler: tree\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	stdout, _, err := run(t, lineDoc(10), "decimate", "--config", cfg, "-q")
	if err != nil {
		t.Fatal(err)
	}
	m, err := meshio.Read(strings.NewReader(stdout))
	if err != nil {
		t.Fatal(err)
	}
	if m.NumPoints() != 5 {
		t.Errorf("config target ignored: %d points", m.NumPoints())
	}

	// Flags win over the file.
	stdout, _, err = run(t, lineDoc(10), "decimate", "--config", cfg, "-q", "--target", "0.2")
	if err != nil {
		t.Fatal(err)
	}
	if m, _ = meshio.Read(strings.NewReader(stdout)); m.NumPoints() != 8 {
		t.Errorf("flag target ignored: %d points", m.NumPoints())
	}
}

func TestDecimateErrors(t *testing.T) {
	in := writeInput(t, lineDoc(5))
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad strategy", []string{"decimate", in, "--strategy", "random"}, `"random"`},
		{"bad format", []string{"decimate", in, "--format", "xml"}, `"xml"`},
		{"two inputs", []string{"decimate", in, "-i", in}, "both"},
		{"missing input", []string{"decimate", in + ".missing"}, "missing"},
		{"bad log level", []string{"decimate", in, "--log-level", "loud"}, "loud"},
		{"point cap", []string{"decimate", in, "--target", "0", "--max-points", "2"}, "allocation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDecimateMalformedInput(t *testing.T) {
	_, _, err := run(t, "points: [[0, 0], [1, 0]]\nlines: [[0, 5]]\n", "decimate")
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("error = %v, want out of range", err)
	}
}

func TestInspect(t *testing.T) {
	doc := `
points: [[0, 0], [1, 0], [2, 0], [0, 1], [1, 2], [2, 1], [5, 5]]
lines: [[0, 1], [1, 2], [3, 4, 5, 3], [6]]
point_data:
  - {name: w, components: 1, data: [1, 2, 3, 4, 5, 6, 7]}
`
	stdout, _, err := run(t, doc, "inspect")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"points:     7 (double)",
		"lines:      4",
		"chains:     2 (1 open, 1 closed)",
		"degenerate: 1",
		"bounds:     [0 0 0] - [5 5 0]",
		"point data: w (1 components)",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("inspect output lacks %q:\n%s", want, stdout)
		}
	}

	stdout, _, err = run(t, doc, "inspect", "--merge=false")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "chains:     3 (2 open, 1 closed)") {
		t.Errorf("unmerged inspect output:\n%s", stdout)
	}
}

func TestInspectMergeFlagOverridesConfig(t *testing.T) {
	doc := "points: [[0, 0], [1, 0], [2, 0]]\nlines: [[0, 1], [1, 2]]\n"
	cfg := filepath.Join(t.TempDir(), "polydec.yaml")
	if err := os.WriteFile(cfg, []byte("merge: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"inspect", "--config", cfg}, "chains:     2 (2 open, 0 closed)"},
		{[]string{"inspect", "--config", cfg, "--merge=true"}, "chains:     1 (1 open, 0 closed)"},
		{[]string{"inspect", "--merge=false"}, "chains:     2 (2 open, 0 closed)"},
	}
	for _, tt := range tests {
		stdout, _, err := run(t, doc, tt.args...)
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if !strings.Contains(stdout, tt.want) {
			t.Errorf("%v: output lacks %q:\n%s", tt.args, tt.want, stdout)
		}
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "polydec "+Version) {
		t.Errorf("version output = %q", stdout)
	}
}
