package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"podbatch/config"
	"podbatch/internal/batch"
	"podbatch/internal/media"
	"podbatch/pkg/utils"
)

func runFetch(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return wrapCmdErr("fetch", err)
	}

	if cmd.Flags().Changed("hours") {
		hours, _ := cmd.Flags().GetInt("hours")
		if hours <= 0 {
			return fmt.Errorf("fetch: %w: --hours must be greater than 0", config.ErrInvalidConfig)
		}
		cfg.Podcasts.BatchHours = hours
	}
	if err := cfg.Validate(); err != nil {
		return wrapCmdErr("fetch", err)
	}

	rem, err := newRemote(cfg)
	if err != nil {
		return wrapCmdErr("fetch", err)
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	report := reporter(cmd)
	p := cfg.Podcasts

	if dryRun {
		report.Title("DRY RUN: nothing will be transferred or deleted")
	}
	report.Detail("Source: %s (%s)", p.SourceRemote, p.Backend)
	report.Detail("Destination: %s", p.Dest)
	report.Detail("Quarantine: %s", p.Quarantine)
	report.Detail("Batch: %d hours", p.BatchHours)

	fetcher := batch.NewFetcher(rem, media.NewMP3Prober(), report, nil, batch.Options{
		Source:     p.SourceRemote,
		Extension:  p.Extension,
		Dest:       p.Dest,
		Quarantine: p.Quarantine,
		StagingDir: p.StagingDir,
		Hours:      p.BatchHours,
		DryRun:     dryRun,
	})

	result, err := fetcher.Run(context.Background())
	if err != nil {
		return wrapCmdErr("fetch", err)
	}

	if wantsJSON(cmd) {
		return utils.FprintJSON(cmd.OutOrStdout(), result)
	}
	return nil
}
