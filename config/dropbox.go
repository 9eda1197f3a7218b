package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DropboxHostDB is where the Dropbox desktop client records its folder.
func DropboxHostDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dropbox", "host.db")
}

// DropboxFolder decodes the folder location from a host.db file. The second
// whitespace-separated field holds the base64 encoded path.
func DropboxFolder(hostDB string) (string, error) {
	data, err := os.ReadFile(hostDB)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", hostDB, err)
	}

	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return "", fmt.Errorf("%w: %s has no folder entry", ErrInvalidConfig, hostDB)
	}

	folder, err := base64.StdEncoding.DecodeString(fields[1])
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidConfig, hostDB, err)
	}
	return string(folder), nil
}
