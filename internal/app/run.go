package app

import (
	"context"
	"fmt"

	"github.com/vk/docpubgo/internal/ctxlog"
	"github.com/vk/docpubgo/internal/pipeline"
	"github.com/vk/docpubgo/internal/switcher"
)

// Run executes the configured operation.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "mode", string(a.config.Mode))

	var err error
	switch a.config.Mode {
	case ModeAdd:
		err = a.runAdd(ctx)
	case ModePipeline:
		err = a.runPipeline(ctx)
	default:
		err = fmt.Errorf("unknown mode %q", a.config.Mode)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}

// runAdd performs the single add-or-replace operation against the switcher
// registry file.
func (a *App) runAdd(ctx context.Context) error {
	cfg := a.config
	a.logger.Info("Updating switcher registry.",
		"registry", cfg.RegistryPath, "version", cfg.Version, "repo", cfg.Repo, "order", string(cfg.Order))

	if err := switcher.Update(cfg.RegistryPath, cfg.Version, cfg.Repo, cfg.Order); err != nil {
		return err
	}

	a.logger.Info("Switcher registry updated.")
	return nil
}

// runPipeline loads the publish manifest and executes its steps in order.
func (a *App) runPipeline(ctx context.Context) error {
	manifest, err := pipeline.Load(ctx, a.config.ManifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	site := pipeline.NewSite(manifest.Docs, a.config.Order)
	a.logger.Info("Publish run starting.",
		"ref", site.Ref, "version", site.Version, "repo", site.Repo, "steps", len(manifest.Steps))

	if err := pipeline.NewRunner(a.registry).Run(ctx, manifest, site); err != nil {
		return err
	}

	a.logger.Info("Publish run finished.")
	return nil
}
