// Package batch fetches a duration-bounded batch of audio files from a remote.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"podbatch/internal/media"
	"podbatch/internal/models"
	"podbatch/internal/remote"
	"podbatch/pkg/utils"
)

// Reporter receives user-facing status lines.
type Reporter interface {
	Title(format string, args ...any)
	OK(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Detail(format string, args ...any)
	Plain(format string, args ...any)
}

type Options struct {
	Source     string
	Extension  string
	Dest       string
	Quarantine string
	StagingDir string
	Hours      int
	DryRun     bool
}

type Fetcher struct {
	remote remote.Remote
	prober media.Prober
	report Reporter
	logger *slog.Logger
	opts   Options
}

func NewFetcher(r remote.Remote, p media.Prober, report Reporter, logger *slog.Logger, opts Options) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Extension == "" {
		opts.Extension = ".mp3"
	}
	return &Fetcher{
		remote: r,
		prober: p,
		report: report,
		logger: logger,
		opts:   opts,
	}
}

// ListCandidates returns the audio files under location ordered by base name.
// A failed listing is reported and yields no candidates.
func (f *Fetcher) ListCandidates(ctx context.Context, location string) []models.Candidate {
	entries, err := f.remote.List(ctx, location)
	if err != nil {
		f.report.Error("Failed to list %s: %v", location, err)
		f.logger.Error("listing failed", "location", location, "error", err)
		return nil
	}

	candidates := make([]models.Candidate, 0, len(entries))
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = path.Base(e.Path)
		}
		if e.IsDir || !strings.HasSuffix(name, f.opts.Extension) {
			continue
		}
		candidates = append(candidates, models.Candidate{
			Location:   location,
			RelPath:    e.Path,
			Name:       name,
			RemotePath: remote.Join(location, e.Path),
			Size:       e.Size,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	})

	f.logger.Debug("listed candidates", "location", location, "entries", len(entries), "candidates", len(candidates))
	return candidates
}

// Run fetches candidates in order until the duration budget is spent. The
// budget is checked before each candidate, so the last file may overshoot it.
// Per-file failures are reported and skipped; only local filesystem errors
// outside a single transfer abort the run.
func (f *Fetcher) Run(ctx context.Context) (*models.FetchResult, error) {
	start := time.Now()
	target := int64(f.opts.Hours) * 3600

	result := &models.FetchResult{
		Source:        f.opts.Source,
		Destination:   f.opts.Dest,
		Quarantine:    f.opts.Quarantine,
		DryRun:        f.opts.DryRun,
		Items:         []models.FetchItem{},
		TargetSeconds: target,
		OperationTime: utils.FormatTime(start),
	}

	if err := utils.EnsureDirs(f.opts.Dest, f.opts.Quarantine); err != nil {
		return nil, err
	}

	var stagingDir string
	if !f.opts.DryRun {
		if f.opts.StagingDir != "" {
			if err := utils.EnsureDirs(f.opts.StagingDir); err != nil {
				return nil, err
			}
		}
		dir, err := os.MkdirTemp(f.opts.StagingDir, "podbatch-")
		if err != nil {
			return nil, fmt.Errorf("failed to create staging directory: %w", err)
		}
		defer os.RemoveAll(dir)
		stagingDir = dir
	}

	candidates := f.ListCandidates(ctx, f.opts.Source)

	remaining := target
	for _, c := range candidates {
		if remaining <= 0 {
			f.logger.Debug("batch complete", "remaining_seconds", remaining)
			break
		}

		item, err := f.fetchOne(ctx, c, stagingDir)
		if err != nil {
			f.finish(result, start)
			return result, err
		}

		remaining -= item.DurationSeconds
		result.Items = append(result.Items, item)
		if item.Outcome == models.OutcomeAccepted {
			result.AcceptedFiles++
		}
		result.TotalSeconds += item.DurationSeconds
	}

	f.finish(result, start)
	f.report.Title("%s", Summary(result))
	return result, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, c models.Candidate, stagingDir string) (models.FetchItem, error) {
	item := models.FetchItem{Name: c.Name, RemotePath: c.RemotePath}

	if f.opts.DryRun {
		f.report.Plain("Would fetch %s", c.DisplayName())
		item.Outcome = models.OutcomeDryRunSkipped
		return item, nil
	}

	staged, err := os.CreateTemp(stagingDir, "fetch-*"+f.opts.Extension)
	if err != nil {
		return item, fmt.Errorf("failed to create staging file: %w", err)
	}
	stagedPath := staged.Name()
	staged.Close()
	defer utils.CleanupTempFile(stagedPath)

	f.report.Detail("Copying %s", c.RemotePath)
	if err := f.remote.Copy(ctx, c.RemotePath, stagedPath); err != nil {
		f.report.Error("Failed to fetch %s: %v", c.DisplayName(), err)
		f.logger.Warn("transfer failed", "remote", c.RemotePath, "error", err)

		placeholder := filepath.Join(f.opts.Quarantine, c.Name)
		if err := utils.TouchEmpty(placeholder); err != nil {
			return item, err
		}
		item.Outcome = models.OutcomeTransferFailed
		item.LocalPath = placeholder
		item.Error = err.Error()
		return item, nil
	}

	if st, err := os.Stat(stagedPath); err == nil {
		f.report.Detail("Fetched %s (%s)", c.DisplayName(), utils.FormatBytes(st.Size()))
	}

	info, err := f.prober.Probe(stagedPath)
	if err != nil {
		f.report.Error("Invalid audio %s, moved to quarantine", c.DisplayName())
		f.logger.Debug("probe failed", "file", c.Name, "error", err)

		quarantined := filepath.Join(f.opts.Quarantine, c.Name)
		if err := utils.MoveFile(stagedPath, quarantined); err != nil {
			return item, err
		}
		item.Outcome = models.OutcomeQuarantined
		item.LocalPath = quarantined
		item.Error = err.Error()
		return item, nil
	}

	accepted := filepath.Join(f.opts.Dest, c.Name)
	if _, err := os.Stat(accepted); err == nil {
		f.report.Warn("Replacing existing %s in %s", c.Name, f.opts.Dest)
	}
	if err := utils.MoveFile(stagedPath, accepted); err != nil {
		return item, err
	}
	item.Outcome = models.OutcomeAccepted
	item.LocalPath = accepted
	item.DurationSeconds = info.Seconds()

	if err := f.remote.Delete(ctx, c.RemotePath); err != nil {
		f.report.Warn("Added %s but could not delete the remote copy: %v", c.DisplayName(), err)
		item.DeleteFailed = true
		item.Error = err.Error()
		return item, nil
	}

	f.report.OK("Added %s (%s)", c.DisplayName(), utils.FormatClock(item.DurationSeconds))
	return item, nil
}

func (f *Fetcher) finish(result *models.FetchResult, start time.Time) {
	result.TotalDuration = utils.FormatClock(result.TotalSeconds)
	result.TargetDuration = utils.FormatClock(result.TargetSeconds)
	result.ElapsedDuration = time.Since(start).Round(time.Millisecond).String()
}

// Summary renders the end-of-run line. The total is never clipped to the target.
func Summary(r *models.FetchResult) string {
	if r.DryRun {
		return fmt.Sprintf("Dry run: would process up to %s (%s listed)",
			utils.FormatClock(r.TargetSeconds), plural(r.Count(models.OutcomeDryRunSkipped), "file"))
	}
	return fmt.Sprintf("Added %s totalling %s of %s target",
		plural(r.AcceptedFiles, "file"), utils.FormatClock(r.TotalSeconds), utils.FormatClock(r.TargetSeconds))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
