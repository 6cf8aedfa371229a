package router

import (
	"context"

	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/google/uuid"
)

// Drain processes every queued file in order and returns the drain report.
// Drains are serialized. If ctx is cancelled between files, the files not
// yet processed go back to the front of the queue.
func (r *Router) Drain(ctx context.Context, trigger string) *DrainReport {
	r.drainMu.Lock()
	defer r.drainMu.Unlock()

	files := r.queue.DrainAll()
	report := r.newReport(trigger, false)
	if len(files) == 0 {
		return report
	}

	snap := r.config.Current()
	logger := r.logger.With().Str("drain", report.ID).Logger()
	logger.Info().
		Int("files", len(files)).
		Str("trigger", trigger).
		Msg("Draining intake queue")

	for i, file := range files {
		if ctx.Err() != nil {
			rest := files[i:]
			r.queue.Requeue(rest)
			report.Requeued = len(rest)
			logger.Warn().Int("requeued", len(rest)).Msg("Drain cancelled, remaining files requeued")
			break
		}

		res := r.process(snap, file, r.storage, logger)
		if res.Outcome == types.OutcomeMoved {
			r.rememberEcho(res.Destination)
		}
		report.Results = append(report.Results, res)
	}
	report.Duration = r.clock.Now().Sub(report.StartedAt)

	logger.Info().
		Int("moved", report.Count(types.OutcomeMoved)).
		Int("failed", report.Failed()).
		Dur("duration", report.Duration).
		Msg("Drain complete")

	if r.recorder != nil && len(report.Results) > 0 {
		// Record even when ctx ended the drain
		if err := r.recorder.Record(context.WithoutCancel(ctx), report); err != nil {
			logger.Error().Err(err).Msg("Failed to record drain")
		}
	}
	return report
}

// Preview reports what a drain would do right now without touching the
// queue or the file system
func (r *Router) Preview() *DrainReport {
	report := r.newReport("preview", true)
	files := r.queue.Snapshot()
	if len(files) == 0 {
		return report
	}

	snap := r.config.Current()
	logger := r.logger.With().Str("drain", report.ID).Bool("dryRun", true).Logger()
	dry := newDryStorage(r.storage)
	for _, file := range files {
		report.Results = append(report.Results, r.process(snap, file, dry, logger))
	}
	report.Duration = r.clock.Now().Sub(report.StartedAt)
	return report
}

func (r *Router) newReport(trigger string, dryRun bool) *DrainReport {
	return &DrainReport{
		ID:        uuid.NewString(),
		Trigger:   trigger,
		DryRun:    dryRun,
		StartedAt: r.clock.Now(),
	}
}
