// Package cli implements the metsysd command line.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/axondata/metsysd"
	"github.com/axondata/metsysd/internal/config"
	"github.com/axondata/metsysd/internal/ui"
)

// flag names that differ from their config key
var flagKeys = map[string]string{
	"name":          config.KeyName,
	"description":   config.KeyDescription,
	"after":         config.KeyAfter,
	"wanted-by":     config.KeyWantedBy,
	"service-type":  config.KeyServiceType,
	"restart":       config.KeyRestart,
	"user":          config.KeyUser,
	"group":         config.KeyGroup,
	"is-user":       config.KeyIsUser,
	"install-dir":   config.KeyInstallDir,
	"daemon-reload": config.KeyDaemonReload,
	"wait-reload":   config.KeyWaitReload,
	"systemctl":     config.KeySystemctl,
	"dry-run":       config.KeyDryRun,
}

// app carries the per-invocation state shared by all subcommands
type app struct {
	v       *viper.Viper
	log     *logrus.Logger
	cfgFile string
	verbose bool
}

// NewRootCmd creates the metsysd command with its subcommands
func NewRootCmd(version string) *cobra.Command {
	a := &app{
		v:   config.New(),
		log: logrus.New(),
	}

	var (
		serviceType metsysd.ServiceType
		restart     metsysd.RestartPolicy
	)

	cmd := &cobra.Command{
		Use:   "metsysd [flags] [command]",
		Short: "Generate and install systemd services",
		Long: `metsysd renders a systemd service unit for a command and installs it
into /etc/systemd/system, ~/.config/systemd/user (--is-user) or a custom
directory (--install-dir), then runs systemctl daemon-reload.`,
		Args:              cobra.MaximumNArgs(1),
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.preRun,
		RunE:              a.runInstall,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (yaml, toml or json)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	flags.StringP("name", "n", "", "name of the service to create (default \""+metsysd.DefaultName+"\")")
	flags.String("description", "", "unit description")
	flags.String("after", "", "unit ordering dependency (default \""+metsysd.DefaultAfter+"\")")
	flags.String("wanted-by", "", "install target (default \""+metsysd.DefaultWantedBy+"\")")
	flags.Var(&serviceType, "service-type", "kind of service: simple, forking, oneshot, idle")
	flags.Var(&restart, "restart", "restart policy: always, on-failure, on-success, no")
	flags.String("user", "", "user running the service (it must exist)")
	flags.String("group", "", "group running the service (it must exist)")

	flags.Bool("is-user", false, "install as a user service, started with the user's session")
	flags.String("install-dir", "", "directory to install the service to, only use when you know what you're doing")
	flags.Bool("daemon-reload", true, "run daemon-reload when the service has been created")
	flags.Bool("wait-reload", false, "wait for daemon-reload to finish")
	flags.String("systemctl", metsysd.DefaultSystemctlPath, "path to systemctl")
	flags.BoolP("dry-run", "d", false, "print the generated service instead of creating it")

	bindFlags(a.v, flags)

	cmd.AddCommand(newRenderCmd(a))
	cmd.AddCommand(newWatchCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// Execute runs cmd and prints a styled error on failure
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		printError(cmd.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	title := "metsysd failed"
	switch {
	case errors.Is(err, metsysd.ErrFileCreate):
		title = "Couldn't create service"
	case errors.Is(err, metsysd.ErrHomeDirectoryNotFound):
		title = "Couldn't find home directory"
	case errors.Is(err, metsysd.ErrReloadSpawn):
		title = "Service created, but daemon-reload could not be started"
	}
	fmt.Fprint(w, ui.FormatError(title, err.Error(), metsysd.HintOf(err)))
}

func (a *app) preRun(cmd *cobra.Command, _ []string) error {
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	a.log.SetLevel(logrus.InfoLevel)
	if a.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}

	return config.ReadFile(a.v, a.cfgFile)
}

// load decodes the current configuration, with an optional positional command
func (a *app) load(args []string) (*config.Config, error) {
	if len(args) == 1 {
		a.v.Set(config.KeyCommand, args[0])
	}
	return config.Load(a.v)
}

// newManager builds a Manager whose reload output goes to the command's stderr
func (a *app) newManager(cmd *cobra.Command, cfg *config.Config) (*metsysd.Manager, error) {
	reloader := metsysd.NewSystemctlReloader(cfg.Systemctl)
	reloader.Stderr = cmd.ErrOrStderr()

	mcfg, err := cfg.ManagerConfig(
		metsysd.WithLogger(a.log),
		metsysd.WithReloader(reloader),
	)
	if err != nil {
		return nil, err
	}
	return metsysd.NewManager(mcfg)
}
