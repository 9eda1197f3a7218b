package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	BackendRclone = "rclone"
	BackendS3     = "s3"
	BackendLocal  = "local"

	DefaultBatchHours = 12
	DefaultExtension  = ".mp3"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

type Config struct {
	Podcasts PodcastsConfig `toml:"podcasts" json:"podcasts"`
	S3       S3Config       `toml:"-" json:"s3"`
	Path     string         `toml:"-" json:"path"`
}

type PodcastsConfig struct {
	BatchHours   int    `toml:"batch_hours" json:"batch_hours"`
	SourceRemote string `toml:"source_remote" json:"source_remote"`
	Dest         string `toml:"dest" json:"dest"`
	Quarantine   string `toml:"quarantine" json:"quarantine"`
	Backend      string `toml:"backend" json:"backend"`
	Extension    string `toml:"extension" json:"extension"`
	RcloneBinary string `toml:"rclone_binary" json:"rclone_binary"`
	StagingDir   string `toml:"staging_dir" json:"staging_dir"`
}

// S3Config is read from the environment (or a .env file), never from the TOML file.
type S3Config struct {
	ApiURL     string `json:"api_url"`
	AccessKey  string `json:"-"`
	SecretKey  string `json:"-"`
	BucketName string `json:"bucket_name"`
	Region     string `json:"region"`
}

// DefaultPath returns $PODBATCH_CONFIG or the file under the user config directory.
func DefaultPath() string {
	if envPath := os.Getenv("PODBATCH_CONFIG"); envPath != "" {
		return envPath
	}
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "podbatch.toml"
	}
	return filepath.Join(configHome, "net.dmlane", "podbatch.toml")
}

// Load reads the TOML file at path and the S3 settings from the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables only")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes config content after variable substitution and applies defaults.
func Parse(content string) (*Config, error) {
	var cfg Config
	meta, err := toml.Decode(substituteVars(content), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	p := &cfg.Podcasts
	if !meta.IsDefined("podcasts", "batch_hours") {
		p.BatchHours = DefaultBatchHours
	}
	if p.Backend == "" {
		p.Backend = BackendRclone
	}
	if p.Extension == "" {
		p.Extension = DefaultExtension
	}
	if p.RcloneBinary == "" {
		p.RcloneBinary = "rclone"
	}
	p.Dest = expandHome(p.Dest)
	p.Quarantine = expandHome(p.Quarantine)
	p.StagingDir = expandHome(p.StagingDir)
	if p.Backend == BackendLocal {
		p.SourceRemote = expandHome(p.SourceRemote)
	}

	cfg.S3 = S3Config{
		ApiURL:     getEnv("API_URL", ""),
		AccessKey:  getEnv("ACCESS_KEY", ""),
		SecretKey:  getEnv("SECRET_KEY", ""),
		BucketName: getEnv("BUCKET_NAME", ""),
		Region:     getEnv("REGION", ""),
	}

	return &cfg, nil
}

// Validate checks the settings a fetch run depends on.
func (c *Config) Validate() error {
	p := c.Podcasts
	var problems []string
	if p.BatchHours <= 0 {
		problems = append(problems, fmt.Sprintf("batch_hours must be greater than 0, got %d", p.BatchHours))
	}
	if p.SourceRemote == "" {
		problems = append(problems, "source_remote is required")
	}
	if p.Dest == "" {
		problems = append(problems, "dest is required")
	}
	if p.Quarantine == "" {
		problems = append(problems, "quarantine is required")
	}
	if !slices.Contains([]string{BackendRclone, BackendS3, BackendLocal}, p.Backend) {
		problems = append(problems, fmt.Sprintf("unknown backend %q", p.Backend))
	}
	if p.Backend == BackendS3 && c.S3.BucketName == "" && !strings.HasPrefix(p.SourceRemote, "s3://") {
		problems = append(problems, "s3 backend needs BUCKET_NAME or an s3:// source_remote")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// CreateConfigFile writes the embedded example config to path, creating parent directories.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

var varPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteVars replaces ${NAME} with the environment value. ${DROPBOX}
// falls back to the Dropbox client's folder; anything else unknown is left as is.
func substituteVars(content string) string {
	return varPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		if name == "DROPBOX" {
			if folder, err := DropboxFolder(DropboxHostDB()); err == nil {
				return folder
			}
		}
		return match
	})
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
