package vcs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianndofor/diffhtml/internal/diff"
)

type recordingRunner struct {
	name   string
	args   []string
	output []byte
	err    error
}

func (r *recordingRunner) Run(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
	r.name = name
	r.args = args
	return r.output, r.err
}

func TestDiffGitArgs(t *testing.T) {
	runner := &recordingRunner{output: []byte("diff --git a/x b/x\n")}
	client := NewClient(runner)

	out, err := client.Diff(context.Background(), diff.Git, []string{"HEAD~1", "--", "src"})
	require.NoError(t, err)
	assert.Equal(t, "diff --git a/x b/x\n", out)
	assert.Equal(t, "git", runner.name)
	assert.Equal(t, []string{"diff", "--no-color", "--no-ext-diff", "HEAD~1", "--", "src"}, runner.args)
}

func TestDiffSvnArgs(t *testing.T) {
	runner := &recordingRunner{output: []byte("Index: a\n")}
	client := NewClient(runner)

	_, err := client.Diff(context.Background(), diff.Svn, []string{"-r", "10:12"})
	require.NoError(t, err)
	assert.Equal(t, "svn", runner.name)
	assert.Equal(t, []string{"diff", "-r", "10:12"}, runner.args)
}

func TestDiffWrapsRunnerError(t *testing.T) {
	boom := errors.New("exit status 128")
	client := NewClient(&recordingRunner{err: boom})

	_, err := client.Diff(context.Background(), diff.Git, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "failed to run git diff")
}

func TestVersionFirstLine(t *testing.T) {
	client := NewClient(&recordingRunner{output: []byte("svn, version 1.14.2 (r1899510)\n   compiled Mar  1 2024\n")})
	version, err := client.Version(context.Background(), diff.Svn)
	require.NoError(t, err)
	assert.Equal(t, "svn, version 1.14.2 (r1899510)", version)
}

func TestFixtureRunner(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "git_diff.txt"), []byte("fixture diff"), 0o644))
	client := NewClient(NewFixtureRunner(root))

	out, err := client.Diff(context.Background(), diff.Git, []string{"main"})
	require.NoError(t, err)
	assert.Equal(t, "fixture diff", out)

	_, err = client.Diff(context.Background(), diff.Svn, nil)
	assert.Error(t, err)

	version, err := client.Version(context.Background(), diff.Git)
	require.NoError(t, err)
	assert.Equal(t, "git version fixture", version)
}
