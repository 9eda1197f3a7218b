package cmd

import (
	"fmt"

	"podbatch/config"
	"podbatch/internal/rclone"
	"podbatch/internal/remote"
	"podbatch/internal/s3client"
)

func newRemote(cfg *config.Config) (remote.Remote, error) {
	switch cfg.Podcasts.Backend {
	case config.BackendRclone:
		return rclone.New(cfg.Podcasts.RcloneBinary), nil
	case config.BackendS3:
		return s3client.New(&cfg.S3)
	case config.BackendLocal:
		return remote.NewLocal(), nil
	default:
		return nil, fmt.Errorf("%w: %q", remote.ErrUnknownBackend, cfg.Podcasts.Backend)
	}
}
