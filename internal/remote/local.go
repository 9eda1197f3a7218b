package remote

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"podbatch/pkg/utils"
)

// Local serves a directory tree on the local filesystem, typically a folder
// kept in sync by a desktop client.
type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

func (l *Local) List(ctx context.Context, location string) ([]Entry, error) {
	root := filepath.Clean(location)
	if err := utils.ValidatePaths([]string{root}); err != nil {
		return nil, &OpError{Op: "list", Path: location, Err: err}
	}

	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		entry := Entry{
			Path:  filepath.ToSlash(rel),
			Name:  d.Name(),
			IsDir: d.IsDir(),
		}
		if !d.IsDir() {
			if info, err := d.Info(); err == nil {
				entry.Size = info.Size()
			}
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, &OpError{Op: "list", Path: location, Err: err}
	}

	return entries, nil
}

func (l *Local) Copy(ctx context.Context, remotePath, localPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(remotePath); errors.Is(err, fs.ErrNotExist) {
		return &OpError{Op: "copy", Path: remotePath, Err: ErrNotFound}
	}
	if _, err := utils.CopyFile(filepath.FromSlash(remotePath), localPath); err != nil {
		return &OpError{Op: "copy", Path: remotePath, Err: err}
	}
	return nil
}

func (l *Local) Delete(ctx context.Context, remotePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(filepath.FromSlash(remotePath)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &OpError{Op: "delete", Path: remotePath, Err: ErrNotFound}
		}
		return &OpError{Op: "delete", Path: remotePath, Err: err}
	}
	return nil
}
