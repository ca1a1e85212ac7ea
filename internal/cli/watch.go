package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/axondata/metsysd"
	"github.com/axondata/metsysd/internal/config"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch --config FILE",
		Short: "Install the service and re-install it whenever the config file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfgFile == "" {
				return errors.New("watch requires --config")
			}
			return a.runWatch(cmd, debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", metsysd.DefaultWatchDebounce, "quiet period before a change is applied")
	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, debounce time.Duration) error {
	ctx := cmd.Context()

	if err := a.reinstall(cmd); err != nil {
		return err
	}

	events, cleanup, err := metsysd.WatchFile(ctx, a.cfgFile, debounce)
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	a.log.WithField("file", a.cfgFile).Info("watching config for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Err != nil {
				a.log.WithError(ev.Err).Warn("watch error")
				continue
			}
			a.log.WithField("file", ev.Path).Info("config changed, re-installing")
			if err := config.ReadFile(a.v, a.cfgFile); err != nil {
				a.log.WithError(err).Error("couldn't read config")
				continue
			}
			if err := a.reinstall(cmd); err != nil {
				a.log.WithError(err).Error("error re-installing service")
			}
		}
	}
}

// reinstall builds the definition and manager from the current config and
// installs it. Dry run only prints the plan.
func (a *app) reinstall(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	def, err := cfg.Definition()
	if err != nil {
		return err
	}
	mgr, err := a.newManager(cmd, cfg)
	if err != nil {
		return err
	}
	if cfg.DryRun {
		return a.printPlan(cmd, mgr.Plan(def))
	}
	return a.install(cmd, mgr, def, cfg)
}
