// Package metsysd generates systemd service units and installs them.
//
// A ServiceDefinition is an immutable value built once with defaults for
// every unset field, and rendered deterministically into unit file text:
//
//	def, err := metsysd.NewServiceDefinition(
//	    metsysd.WithName("myapp"),
//	    metsysd.WithExecStart("/usr/local/bin/myapp serve"),
//	    metsysd.WithRestartPolicy(metsysd.RestartOnFailure),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(def.Render())
//
// # Installing
//
// A Manager resolves the install directory once from its configuration:
// an explicit directory wins, otherwise system scope uses
// /etc/systemd/system and user scope uses ~/.config/systemd/user (created on
// demand). Create writes <name>.service and, unless disabled, spawns
// `systemctl [--user] daemon-reload`:
//
//	cfg, err := metsysd.NewManagerConfig(metsysd.WithScope(metsysd.ScopeUser))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mgr, err := metsysd.NewManager(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	proc, err := mgr.Create(ctx, def)
//
// The reload is fire-and-forget. Create returns as soon as systemctl has been
// started; call proc.Wait to block until it exits.
//
// Errors carry one of the kinds ErrHomeDirectoryNotFound, ErrFileCreate or
// ErrReloadSpawn and can be checked with errors.Is.
package metsysd
