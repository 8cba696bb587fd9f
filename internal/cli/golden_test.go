package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func goldenPath(name string) string {
	return filepath.Join(repoRoot(), "testdata", "golden", name)
}

func readGolden(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(goldenPath(name))
	if err != nil {
		t.Fatalf("failed to read golden file: %v", err)
	}
	return string(data)
}

func TestRenderGolden(t *testing.T) {
	withMockEnv(t)
	output := runRoot(t, "render", samplePath())
	expected := readGolden(t, "render.html")
	if output != expected {
		t.Fatalf("render output mismatch\n--- expected\n%s\n--- got\n%s", expected, output)
	}
}

func TestRenderGitFixtureGolden(t *testing.T) {
	withMockEnv(t)
	output := runRoot(t, "render", "--git", "HEAD~1")
	expected := readGolden(t, "render.html")
	if output != expected {
		t.Fatalf("render --git output mismatch\n--- expected\n%s\n--- got\n%s", expected, output)
	}
}

func TestRenderParallelGolden(t *testing.T) {
	withMockEnv(t)
	output := runRoot(t, "render", samplePath(), "--workers", "4")
	if output != readGolden(t, "render.html") {
		t.Fatalf("parallel render differs from golden output")
	}
}

func TestRenderOutFileGolden(t *testing.T) {
	withMockEnv(t)
	out := filepath.Join(t.TempDir(), "diff.html")
	if stdout := runRoot(t, "render", samplePath(), "--out", out); stdout != "" {
		t.Fatalf("expected no stdout with --out, got %q", stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(data) != readGolden(t, "render.html") {
		t.Fatalf("--out file differs from golden output")
	}
}

func TestStatGolden(t *testing.T) {
	withMockEnv(t)
	output := runRoot(t, "stat", samplePath())
	expected := readGolden(t, "stat.txt")
	if output != expected {
		t.Fatalf("stat output mismatch\n--- expected\n%s\n--- got\n%s", expected, output)
	}
}
