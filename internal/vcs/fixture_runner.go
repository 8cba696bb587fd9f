package vcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FixtureRunner serves canned output from Root. "git diff ..." reads
// git_diff.txt, "svn diff ..." reads svn_diff.txt.
type FixtureRunner struct {
	Root string
}

func NewFixtureRunner(root string) FixtureRunner {
	return FixtureRunner{Root: root}
}

func (f FixtureRunner) Run(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
	_ = ctx
	_ = stdin
	if len(args) == 0 {
		return nil, fmt.Errorf("no fixture for %s without args", name)
	}
	switch args[0] {
	case "diff":
		return os.ReadFile(filepath.Join(f.Root, name+"_diff.txt"))
	case "--version":
		return []byte(name + " version fixture\n"), nil
	default:
		return nil, fmt.Errorf("no fixture for %s %v", name, args)
	}
}
