// Package rclone drives the rclone binary as a remote.Remote.
package rclone

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"podbatch/internal/remote"
)

// exit code rclone uses for "directory not found" and "file not found".
const (
	exitDirNotFound  = 3
	exitFileNotFound = 4
)

// Runner executes a process and returns its captured stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

type Client struct {
	binary string
	run    Runner
	logger *slog.Logger
}

type Option func(*Client)

func WithRunner(r Runner) Option {
	return func(c *Client) { c.run = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(binary string, opts ...Option) *Client {
	if binary == "" {
		binary = "rclone"
	}
	c := &Client{
		binary: binary,
		run:    execRunner,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) List(ctx context.Context, location string) ([]remote.Entry, error) {
	out, err := c.exec(ctx, "lsjson", "-R", location)
	if err != nil {
		return nil, &remote.OpError{Op: "list", Path: location, Err: err}
	}

	var entries []remote.Entry
	if err := json.Unmarshal(bytes.TrimSpace(out), &entries); err != nil {
		return nil, &remote.OpError{Op: "list", Path: location, Err: fmt.Errorf("failed to parse lsjson output: %w", err)}
	}
	return entries, nil
}

func (c *Client) Copy(ctx context.Context, remotePath, localPath string) error {
	if _, err := c.exec(ctx, "copyto", remotePath, localPath); err != nil {
		return &remote.OpError{Op: "copy", Path: remotePath, Err: err}
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, remotePath string) error {
	if _, err := c.exec(ctx, "deletefile", remotePath); err != nil {
		return &remote.OpError{Op: "delete", Path: remotePath, Err: err}
	}
	return nil
}

func (c *Client) exec(ctx context.Context, args ...string) ([]byte, error) {
	c.logger.Debug("running rclone", "binary", c.binary, "args", strings.Join(args, " "))
	out, err := c.run(ctx, c.binary, args...)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && (exitErr.Code == exitDirNotFound || exitErr.Code == exitFileNotFound) {
			return out, fmt.Errorf("%w: %v", remote.ErrNotFound, err)
		}
		return out, err
	}
	return out, nil
}

// ExitError reports a non-zero rclone exit together with its stderr.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("rclone exited with status %d", e.Code)
	}
	return fmt.Sprintf("rclone exited with status %d: %s", e.Code, msg)
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), &ExitError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return stdout.Bytes(), fmt.Errorf("failed to run %s: %w", name, err)
	}
	return stdout.Bytes(), nil
}
