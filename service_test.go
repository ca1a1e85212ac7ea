package metsysd

import (
	"errors"
	"testing"
)

func TestNewServiceDefinitionDefaults(t *testing.T) {
	def, err := NewServiceDefinition()
	if err != nil {
		t.Fatal(err)
	}

	if def.Name() != DefaultName {
		t.Errorf("Name = %q, want %q", def.Name(), DefaultName)
	}
	if def.Description() != DefaultDescription {
		t.Errorf("Description = %q, want %q", def.Description(), DefaultDescription)
	}
	if def.After() != DefaultAfter {
		t.Errorf("After = %q, want %q", def.After(), DefaultAfter)
	}
	if def.Exec().ExecStart() != DefaultExecStart {
		t.Errorf("ExecStart = %q, want %q", def.Exec().ExecStart(), DefaultExecStart)
	}
	if def.Exec().ServiceType() != ServiceTypeSimple {
		t.Errorf("ServiceType = %v, want simple", def.Exec().ServiceType())
	}
	if def.Exec().Restart() != RestartNo {
		t.Errorf("Restart = %v, want no", def.Exec().Restart())
	}
	if def.Exec().User().IsSet() || def.Exec().Group().IsSet() {
		t.Error("User/Group should be unset by default")
	}
	if def.Install().WantedBy() != DefaultWantedBy {
		t.Errorf("WantedBy = %q, want %q", def.Install().WantedBy(), DefaultWantedBy)
	}
	if def.UnitName() != DefaultName+".service" {
		t.Errorf("UnitName = %q", def.UnitName())
	}
}

func TestNewServiceDefinitionOptions(t *testing.T) {
	def, err := NewServiceDefinition(
		WithName("web"),
		WithDescription("Web frontend"),
		WithAfter("network-online.target"),
		WithExecStart("/usr/bin/web"),
		WithServiceType(ServiceTypeForking),
		WithRestartPolicy(RestartAlways),
		WithUser("www"),
		WithGroup("www-data"),
		WithWantedBy("default.target"),
	)
	if err != nil {
		t.Fatal(err)
	}

	if user, ok := def.Exec().User().Get(); !ok || user != "www" {
		t.Errorf("User = %q, %v", user, ok)
	}
	if group := def.Exec().Group().OrElse(""); group != "www-data" {
		t.Errorf("Group = %q", group)
	}
	if def.Exec().ServiceType() != ServiceTypeForking || def.Exec().Restart() != RestartAlways {
		t.Errorf("enums = %v/%v", def.Exec().ServiceType(), def.Exec().Restart())
	}
	if def.After() != "network-online.target" || def.Install().WantedBy() != "default.target" {
		t.Errorf("targets = %q/%q", def.After(), def.Install().WantedBy())
	}
}

func TestNewServiceDefinitionInvalidName(t *testing.T) {
	for _, name := range []string{"a/b", "../etc", ".", "..", "x\ny"} {
		t.Run(name, func(t *testing.T) {
			_, err := NewServiceDefinition(WithName(name))
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("err = %v, want ErrInvalidName", err)
			}
		})
	}
}

func TestNewServiceDefinitionInvalidEnum(t *testing.T) {
	if _, err := NewServiceDefinition(WithServiceType(ServiceType(42))); err == nil {
		t.Error("expected error for unknown service type")
	}
	if _, err := NewServiceDefinition(WithRestartPolicy(RestartPolicy(-1))); err == nil {
		t.Error("expected error for unknown restart policy")
	}
}

func TestOptional(t *testing.T) {
	none := None[string]()
	if none.IsSet() {
		t.Error("None should be unset")
	}
	if got := none.OrElse("x"); got != "x" {
		t.Errorf("OrElse = %q", got)
	}

	some := Some("v")
	if v, ok := some.Get(); !ok || v != "v" {
		t.Errorf("Get = %q, %v", v, ok)
	}
}
