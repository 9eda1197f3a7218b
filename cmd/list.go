package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"podbatch/internal/batch"
	"podbatch/internal/media"
	"podbatch/internal/models"
	"podbatch/pkg/utils"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the remote audio files in the order they would be fetched",
		Long: `List every audio file under the configured source in fetch order.

Nothing is transferred or deleted. The listing is printed as JSON.`,
		Example: `  # Show the queue
  podbatch list

  # Use another config file
  podbatch list --config ~/podbatch-s3.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return wrapCmdErr("list", err)
	}
	if err := cfg.Validate(); err != nil {
		return wrapCmdErr("list", err)
	}

	rem, err := newRemote(cfg)
	if err != nil {
		return wrapCmdErr("list", err)
	}

	p := cfg.Podcasts
	fetcher := batch.NewFetcher(rem, media.NewMP3Prober(), reporter(cmd), nil, batch.Options{
		Source:    p.SourceRemote,
		Extension: p.Extension,
	})
	candidates := fetcher.ListCandidates(context.Background(), p.SourceRemote)

	var total int64
	for _, c := range candidates {
		total += c.Size
	}

	return utils.FprintJSON(cmd.OutOrStdout(), models.ListResult{
		Source:     p.SourceRemote,
		Backend:    p.Backend,
		Candidates: candidates,
		TotalFiles: len(candidates),
		TotalSize:  utils.FormatBytes(total),
	})
}
