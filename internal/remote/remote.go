// Package remote describes the file service batches are fetched from.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound       = errors.New("remote file not found")
	ErrUnknownBackend = errors.New("unknown remote backend")
)

// Entry is one item of a recursive listing. Path is relative to the listed location.
type Entry struct {
	Path  string `json:"Path"`
	Name  string `json:"Name"`
	Size  int64  `json:"Size"`
	IsDir bool   `json:"IsDir"`
}

//go:generate mockgen -destination=../mocks/mock_remote.go -package=mocks podbatch/internal/remote Remote

// Remote is a synchronous file service with list, copy and delete operations.
type Remote interface {
	List(ctx context.Context, location string) ([]Entry, error)
	Copy(ctx context.Context, remotePath, localPath string) error
	Delete(ctx context.Context, remotePath string) error
}

// Join builds the full remote path of an entry listed under location.
func Join(location, relPath string) string {
	return strings.TrimSuffix(location, "/") + "/" + strings.TrimPrefix(relPath, "/")
}

// OpError records the failed operation and the path it was applied to.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
