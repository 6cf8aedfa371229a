package router

import (
	"path"
	"strings"
	"time"

	"github.com/arthur-debert/filerouter/pkg/config"
	"github.com/arthur-debert/filerouter/pkg/errors"
	"github.com/arthur-debert/filerouter/pkg/paths"
	"github.com/arthur-debert/filerouter/pkg/template"
	"github.com/arthur-debert/filerouter/pkg/types"
	"github.com/rs/zerolog"
)

var timestampStrip = strings.NewReplacer(":", "", "-", "", ".", "")

// Timestamp formats t as a compact, sortable UTC time such as
// 20240101T120000000Z
func Timestamp(t time.Time) string {
	return timestampStrip.Replace(t.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
}

// FileName renders the destination file name for f. The bool reports that
// the template rendered empty and the original name was used instead.
func FileName(tmpl string, f types.PendingFile, now time.Time) (string, bool) {
	name := template.Render(tmpl, map[string]interface{}{
		template.VarFileName:      f.BaseName,
		template.VarFileExtension: f.Extension,
		template.VarTimestamp:     Timestamp(now),
	})
	if name != "" {
		return name, false
	}
	if f.Extension == "" {
		return f.BaseName, true
	}
	return f.BaseName + "." + f.Extension, true
}

// process runs one file through the routing pipeline. It never panics on a
// storage failure; every failure becomes the result's outcome.
func (r *Router) process(snap *config.Snapshot, file types.PendingFile, storage types.Storage, logger zerolog.Logger) Result {
	res := Result{File: file}
	log := logger.With().Str("path", file.Path).Logger()
	cfg := snap.Router()

	// 1. Existence check
	exists, err := storage.Exists(file.Path)
	if err != nil || !exists {
		res.Outcome = types.OutcomeVanished
		res.Err = routeErr(err, errors.ErrFileVanished, "file no longer exists: %s", file.Path).
			WithDetail("path", file.Path)
		log.Warn().Err(err).Msg("Queued file no longer exists, skipping")
		return res
	}

	// 2. Rule resolution
	rule, ok := snap.Matcher.Match(file.Path)
	if !ok {
		res.Outcome = types.OutcomeNoRule
		res.Err = errors.Newf(errors.ErrNoRuleMatched, "no rule matches %s", file.Path).
			WithDetail("path", file.Path)
		log.Warn().Msg("No matching rule found for file")
		return res
	}
	res.Rule = &rule
	destDir := paths.Normalize(rule.Destination)
	log = log.With().Str("pattern", rule.Pattern).Str("destDir", destDir).Logger()

	// 3. Destination preparation
	if created, err := r.prepareDir(storage, destDir, cfg.AutoCreateDestinationDir, log); err != nil {
		res.Outcome = types.OutcomeDestCreateFailed
		res.Err = errors.Wrapf(err, errors.ErrDestCreateFailed, "failed to create destination directory %s", destDir).
			WithDetail("dir", destDir)
		log.Error().Err(err).Msg("Failed to create destination directory")
		return res
	} else if created {
		res.CreatedDir = destDir
	}

	// 4. File name rendering
	name, fallback := FileName(cfg.AttachmentNameTemplate, file, r.clock.Now())
	if fallback {
		res.NameFallback = true
		log.Warn().
			Str("template", cfg.AttachmentNameTemplate).
			Str("name", name).
			Msg("Template rendered an empty name, using the original name")
	}
	dst := paths.Join(destDir, name)
	res.Destination = dst
	log = log.With().Str("destination", dst).Logger()

	if dst == file.Path {
		res.Outcome = types.OutcomeInPlace
		log.Info().Msg("File is already at its destination")
		return res
	}

	// Templates may contain directories of their own
	if sub := parentDir(dst); sub != destDir {
		if _, err := r.prepareDir(storage, sub, cfg.AutoCreateDestinationDir, log); err != nil {
			res.Outcome = types.OutcomeDestCreateFailed
			res.Err = errors.Wrapf(err, errors.ErrDestCreateFailed, "failed to create destination directory %s", sub).
				WithDetail("dir", sub)
			log.Error().Err(err).Msg("Failed to create destination directory")
			return res
		}
	}

	// 5. Collision check
	taken, err := storage.Exists(dst)
	if err != nil || taken {
		res.Outcome = types.OutcomeCollision
		res.Err = routeErr(err, errors.ErrDestinationConflict, "destination already exists: %s", dst).
			WithDetail("destination", dst)
		log.Warn().Err(err).Msg("Destination already exists, leaving file in place")
		return res
	}

	// 6. Move
	if err := storage.Rename(file.Path, dst); err != nil {
		res.Outcome = types.OutcomeMoveFailed
		res.Err = errors.Wrapf(err, errors.ErrMoveFailed, "failed to move %s to %s", file.Path, dst).
			WithDetail("source", file.Path).
			WithDetail("destination", dst)
		log.Error().Err(err).Msg("Failed to move file")
		return res
	}

	res.Outcome = types.OutcomeMoved
	log.Info().Msg("File moved")
	return res
}

// prepareDir makes sure dir exists when autoCreate is set. It reports
// whether the directory was created. Without autoCreate a missing directory
// is only logged and the move is left to fail.
func (r *Router) prepareDir(storage types.Storage, dir string, autoCreate bool, log zerolog.Logger) (bool, error) {
	if dir == "" {
		return false, nil
	}
	exists, err := storage.Exists(dir)
	if err == nil && exists {
		return false, nil
	}
	if !autoCreate {
		log.Warn().Str("dir", dir).Msg("Destination directory does not exist and auto-create is disabled")
		return false, nil
	}
	if err := storage.MkdirAll(dir); err != nil {
		return false, err
	}
	log.Info().Str("dir", dir).Msg("Created destination directory")
	return true, nil
}

func parentDir(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// routeErr wraps err when there is one
func routeErr(err error, code errors.ErrorCode, format string, args ...interface{}) *errors.RouteError {
	if err != nil {
		return errors.Wrapf(err, code, format, args...)
	}
	return errors.Newf(code, format, args...)
}
