package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "test_value")

	result := getEnv("TEST_VAR", "default_value")
	if result != "test_value" {
		t.Errorf("getEnv() = %s, want %s", result, "test_value")
	}

	result = getEnv("NON_EXISTENT_VAR", "default_value")
	if result != "default_value" {
		t.Errorf("getEnv() = %s, want %s", result, "default_value")
	}

	t.Setenv("EMPTY_VAR", "")
	result = getEnv("EMPTY_VAR", "default_value")
	if result != "default_value" {
		t.Errorf("getEnv() = %s, want %s", result, "default_value")
	}
}

func TestLoad(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("PODBATCH_TEST_REMOTE", "dropbox:Podcasts")
	t.Setenv("BUCKET_NAME", "test-bucket")
	t.Setenv("REGION", "test-region")

	path := filepath.Join(t.TempDir(), "podbatch.toml")
	content := `
[podcasts]
batch_hours = 987
source_remote = "${PODBATCH_TEST_REMOTE}/mp3"
dest = "~/DIR_DEST"
quarantine = "/var/quarantine"
extra = "ignore"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, 987, cfg.Podcasts.BatchHours)
	assert.Equal(t, "dropbox:Podcasts/mp3", cfg.Podcasts.SourceRemote)
	assert.Equal(t, filepath.Join(home, "DIR_DEST"), cfg.Podcasts.Dest)
	assert.Equal(t, "/var/quarantine", cfg.Podcasts.Quarantine)
	assert.Equal(t, BackendRclone, cfg.Podcasts.Backend)
	assert.Equal(t, ".mp3", cfg.Podcasts.Extension)
	assert.Equal(t, "rclone", cfg.Podcasts.RcloneBinary)
	assert.Equal(t, "test-bucket", cfg.S3.BucketName)
	assert.Equal(t, "test-region", cfg.S3.Region)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[podcasts\nbatch_hours ="), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigNotFound)
}

func TestParse_UnknownVariableLeftAlone(t *testing.T) {
	cfg, err := Parse(`
[podcasts]
source_remote = "${PODBATCH_SURELY_UNSET_VAR}"
`)
	require.NoError(t, err)
	assert.Equal(t, "${PODBATCH_SURELY_UNSET_VAR}", cfg.Podcasts.SourceRemote)
	assert.Equal(t, DefaultBatchHours, cfg.Podcasts.BatchHours)
}

func TestParse_ExplicitZeroHoursIsKept(t *testing.T) {
	cfg, err := Parse(`
[podcasts]
batch_hours = 0
source_remote = "remote:mp3"
dest = "/tmp/dest"
quarantine = "/tmp/quarantine"
`)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Podcasts.BatchHours)

	err = cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "batch_hours must be greater than 0")
}

func TestParse_DropboxFromEnvironment(t *testing.T) {
	t.Setenv("DROPBOX", "/Users/dave/Dropbox")

	cfg, err := Parse(`
[podcasts]
source_remote = "${DROPBOX}/OnDemand"
backend = "local"
`)
	require.NoError(t, err)
	assert.Equal(t, "/Users/dave/Dropbox/OnDemand", cfg.Podcasts.SourceRemote)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Podcasts: PodcastsConfig{
			BatchHours:   1,
			SourceRemote: "fake:",
			Dest:         "/dest",
			Quarantine:   "/q",
			Backend:      BackendRclone,
		}}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero hours", func(c *Config) { c.Podcasts.BatchHours = 0 }, "batch_hours"},
		{"negative hours", func(c *Config) { c.Podcasts.BatchHours = -3 }, "batch_hours"},
		{"no source", func(c *Config) { c.Podcasts.SourceRemote = "" }, "source_remote"},
		{"no dest", func(c *Config) { c.Podcasts.Dest = "" }, "dest"},
		{"no quarantine", func(c *Config) { c.Podcasts.Quarantine = "" }, "quarantine"},
		{"bad backend", func(c *Config) { c.Podcasts.Backend = "ftp" }, "unknown backend"},
		{"s3 without bucket", func(c *Config) { c.Podcasts.Backend = BackendS3 }, "BUCKET_NAME"},
		{"s3 with scheme", func(c *Config) {
			c.Podcasts.Backend = BackendS3
			c.Podcasts.SourceRemote = "s3://pods/mp3"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCreateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "podbatch.toml")

	require.NoError(t, CreateConfigFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, exampleConf, data)

	cfg, err := Parse(string(data))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Podcasts.BatchHours)
	assert.Equal(t, BackendRclone, cfg.Podcasts.Backend)

	assert.Error(t, CreateConfigFile(path), "should refuse to overwrite")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("PODBATCH_CONFIG", "/etc/podbatch.toml")
	assert.Equal(t, "/etc/podbatch.toml", DefaultPath())

	t.Setenv("PODBATCH_CONFIG", "")
	assert.Equal(t, "podbatch.toml", filepath.Base(DefaultPath()))
}

func TestDropboxFolder(t *testing.T) {
	dir := t.TempDir()
	hostDB := filepath.Join(dir, "host.db")
	encoded := base64.StdEncoding.EncodeToString([]byte("/Users/dave/Library/CloudStorage/Dropbox"))
	require.NoError(t, os.WriteFile(hostDB, []byte("0123456789abcdef\n"+encoded+"\n"), 0600))

	folder, err := DropboxFolder(hostDB)
	require.NoError(t, err)
	assert.Equal(t, "/Users/dave/Library/CloudStorage/Dropbox", folder)

	_, err = DropboxFolder(filepath.Join(dir, "missing.db"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(hostDB, []byte("onlyonefield"), 0600))
	_, err = DropboxFolder(hostDB)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
