package vcs

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/brianndofor/diffhtml/internal/diff"
)

type Client struct {
	Runner Runner
}

func NewClient(runner Runner) *Client {
	return &Client{Runner: runner}
}

// Binary names the executable behind a variant.
func Binary(v diff.Variant) string {
	if v.Name == diff.Svn.Name {
		return "svn"
	}
	return "git"
}

func (c *Client) CheckInstalled(v diff.Variant) error {
	name := Binary(v)
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not found in PATH", name)
	}
	return nil
}

// Version returns the first line of "<binary> --version".
func (c *Client) Version(ctx context.Context, v diff.Variant) (string, error) {
	out, err := c.Runner.Run(ctx, Binary(v), []string{"--version"}, nil)
	if err != nil {
		return "", err
	}
	first, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(first), nil
}

// Diff runs the variant's diff command with extra revision or path args and
// returns the composite diff text.
func (c *Client) Diff(ctx context.Context, v diff.Variant, args []string) (string, error) {
	cmdArgs := []string{"diff"}
	if Binary(v) == "git" {
		cmdArgs = append(cmdArgs, "--no-color", "--no-ext-diff")
	}
	cmdArgs = append(cmdArgs, args...)
	out, err := c.Runner.Run(ctx, Binary(v), cmdArgs, nil)
	if err != nil {
		return "", fmt.Errorf("failed to run %s diff: %w", Binary(v), err)
	}
	return string(out), nil
}
