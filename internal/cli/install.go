package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/axondata/metsysd"
	"github.com/axondata/metsysd/internal/config"
	"github.com/axondata/metsysd/internal/ui"
)

func (a *app) runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := a.load(args)
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

// install creates the unit and, if asked, waits for the reload it spawned
func (a *app) install(cmd *cobra.Command, mgr *metsysd.Manager, def metsysd.ServiceDefinition, cfg *config.Config) error {
	proc, err := mgr.Create(cmd.Context(), def)
	if err != nil {
		a.log.WithError(err).Error("error creating service")
		return err
	}

	ui.Success(cmd.OutOrStdout(), fmt.Sprintf("Service %s created in %s", def.UnitName(), mgr.Dir()))

	if proc == nil || !cfg.WaitReload {
		return nil
	}

	a.log.WithField("pid", proc.Pid()).Debug("waiting for daemon-reload")
	if err := proc.Wait(cmd.Context()); err != nil {
		return fmt.Errorf("%s: %w", strings.Join(proc.Args(), " "), err)
	}
	a.log.Debug("daemon-reload finished")
	return nil
}

func (a *app) printPlan(cmd *cobra.Command, plan metsysd.Plan) error {
	fields := logrus.Fields{"path": plan.Path}
	if plan.CreateDir {
		fields["create_dir"] = plan.Dir
	}
	if plan.ReloadArgs != nil {
		fields["reload"] = strings.Join(plan.ReloadArgs, " ")
	}
	a.log.WithFields(fields).Info("dry run enabled, not creating service")

	_, err := fmt.Fprint(cmd.OutOrStdout(), plan.Content)
	return err
}
