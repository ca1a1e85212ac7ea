package metsysd

import (
	"strings"
	"testing"

	"github.com/coreos/go-systemd/v22/unit"
)

const scenarioA = `[Unit]
Description=This service has been generated with metsysd
After=network.target
[Service]
ExecStart=echo hi
Type=simple
Restart=no
[Install]
WantedBy=multi-user.target
`

const scenarioB = `[Unit]
Description=This service has been generated with metsysd
After=network.target
[Service]
ExecStart=echo hi
Type=simple
Restart=no
User=alice
Group=staff
[Install]
WantedBy=multi-user.target
`

func mustDefinition(t *testing.T, opts ...DefinitionOption) ServiceDefinition {
	t.Helper()
	def, err := NewServiceDefinition(opts...)
	if err != nil {
		t.Fatalf("NewServiceDefinition: %v", err)
	}
	return def
}

func TestRenderDefaults(t *testing.T) {
	def := mustDefinition(t, WithName("test"), WithExecStart("echo hi"))

	if got := def.Render(); got != scenarioA {
		t.Errorf("Render() =\n%s\nwant\n%s", got, scenarioA)
	}
}

func TestRenderUserAndGroup(t *testing.T) {
	def := mustDefinition(t,
		WithName("test"),
		WithExecStart("echo hi"),
		WithUser("alice"),
		WithGroup("staff"),
	)

	if got := def.Render(); got != scenarioB {
		t.Errorf("Render() =\n%s\nwant\n%s", got, scenarioB)
	}
}

func TestRenderOptionalLines(t *testing.T) {
	tests := []struct {
		name      string
		opts      []DefinitionOption
		wantUser  bool
		wantGroup bool
	}{
		{name: "neither"},
		{name: "user only", opts: []DefinitionOption{WithUser("alice")}, wantUser: true},
		{name: "group only", opts: []DefinitionOption{WithGroup("staff")}, wantGroup: true},
		{name: "both", opts: []DefinitionOption{WithUser("alice"), WithGroup("staff")}, wantUser: true, wantGroup: true},
		{name: "empty user is unset", opts: []DefinitionOption{WithUser("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustDefinition(t, tt.opts...).Render()

			if got := strings.Contains(out, "\nUser="); got != tt.wantUser {
				t.Errorf("User line present = %v, want %v", got, tt.wantUser)
			}
			if got := strings.Contains(out, "\nGroup="); got != tt.wantGroup {
				t.Errorf("Group line present = %v, want %v", got, tt.wantGroup)
			}
			if strings.Contains(out, "\n\n") {
				t.Errorf("output contains a blank line:\n%s", out)
			}
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	opts := []DefinitionOption{
		WithName("web"),
		WithExecStart("/usr/bin/web --port 8080"),
		WithServiceType(ServiceTypeForking),
		WithRestartPolicy(RestartAlways),
		WithUser("www"),
	}
	a := mustDefinition(t, opts...)
	b := mustDefinition(t, opts...)

	first := a.Render()
	for i := 0; i < 10; i++ {
		if got := b.Render(); got != first {
			t.Fatalf("render %d differs:\n%s\nvs\n%s", i, got, first)
		}
	}
}

func TestRenderSectionOrder(t *testing.T) {
	defs := []ServiceDefinition{
		mustDefinition(t),
		mustDefinition(t, WithUser("u"), WithGroup("g"), WithServiceType(ServiceTypeIdle)),
		mustDefinition(t, WithDescription("[Install] lookalike"), WithRestartPolicy(RestartOnSuccess)),
	}

	for _, def := range defs {
		var headers []string
		for _, line := range strings.Split(strings.TrimSuffix(def.Render(), "\n"), "\n") {
			if strings.HasPrefix(line, "[") {
				headers = append(headers, line)
			}
		}
		want := []string{"[Unit]", "[Service]", "[Install]"}
		if strings.Join(headers, ",") != strings.Join(want, ",") {
			t.Errorf("section headers = %v, want %v", headers, want)
		}
	}
}

func TestRenderValuesVerbatim(t *testing.T) {
	cmd := `/bin/sh -c "echo $HOME; echo 'quoted' \\ done"`
	def := mustDefinition(t, WithExecStart(cmd))

	if !strings.Contains(def.Render(), "\nExecStart="+cmd+"\n") {
		t.Errorf("ExecStart was altered:\n%s", def.Render())
	}
}

func TestRenderParsesAsSystemdUnit(t *testing.T) {
	def := mustDefinition(t,
		WithName("parsed"),
		WithExecStart("/usr/local/bin/app serve"),
		WithServiceType(ServiceTypeOneshot),
		WithRestartPolicy(RestartOnFailure),
		WithUser("app"),
		WithGroup("app"),
		WithWantedBy("default.target"),
	)

	opts, err := unit.DeserializeOptions(strings.NewReader(def.Render()))
	if err != nil {
		t.Fatalf("DeserializeOptions: %v", err)
	}

	want := []unit.UnitOption{
		{Section: "Unit", Name: "Description", Value: DefaultDescription},
		{Section: "Unit", Name: "After", Value: DefaultAfter},
		{Section: "Service", Name: "ExecStart", Value: "/usr/local/bin/app serve"},
		{Section: "Service", Name: "Type", Value: "oneshot"},
		{Section: "Service", Name: "Restart", Value: "on-failure"},
		{Section: "Service", Name: "User", Value: "app"},
		{Section: "Service", Name: "Group", Value: "app"},
		{Section: "Install", Name: "WantedBy", Value: "default.target"},
	}
	if len(opts) != len(want) {
		t.Fatalf("got %d options, want %d", len(opts), len(want))
	}
	for i, o := range opts {
		if *o != want[i] {
			t.Errorf("option %d = %+v, want %+v", i, *o, want[i])
		}
	}
}

func TestWriteTo(t *testing.T) {
	def := mustDefinition(t, WithName("test"), WithExecStart("echo hi"))

	var sb strings.Builder
	n, err := def.WriteTo(&sb)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(scenarioA)) || sb.String() != scenarioA {
		t.Errorf("WriteTo wrote %d bytes %q", n, sb.String())
	}
	if def.String() != scenarioA {
		t.Errorf("String() differs from Render()")
	}
}
