package metsysd

import (
	"io"
	"strings"
)

// Section is a bracketed unit file section
type Section string

// Unit file sections in the order they are rendered
const (
	SectionUnit    Section = "Unit"
	SectionService Section = "Service"
	SectionInstall Section = "Install"
)

// Directive is a single Key=Value line
type Directive struct {
	Key   string
	Value string
}

// UnitSection is a section header with its directives
type UnitSection struct {
	Name       Section
	Directives []Directive
}

// Sections returns the definition as ordered unit file sections.
// User and Group appear only when set, in that order, after Restart.
func (d ServiceDefinition) Sections() []UnitSection {
	service := []Directive{
		{Key: "ExecStart", Value: d.exec.execStart},
		{Key: "Type", Value: d.exec.serviceType.String()},
		{Key: "Restart", Value: d.exec.restart.String()},
	}

	optionals := []struct {
		key   string
		value Optional[string]
	}{
		{key: "User", value: d.exec.user},
		{key: "Group", value: d.exec.group},
	}
	for _, o := range optionals {
		if v, ok := o.value.Get(); ok {
			service = append(service, Directive{Key: o.key, Value: v})
		}
	}

	return []UnitSection{
		{
			Name: SectionUnit,
			Directives: []Directive{
				{Key: "Description", Value: d.description},
				{Key: "After", Value: d.after},
			},
		},
		{Name: SectionService, Directives: service},
		{
			Name: SectionInstall,
			Directives: []Directive{
				{Key: "WantedBy", Value: d.install.wantedBy},
			},
		},
	}
}

// Render returns the unit file text. Values are written verbatim.
func (d ServiceDefinition) Render() string {
	var unit strings.Builder

	for _, section := range d.Sections() {
		unit.WriteString("[" + string(section.Name) + "]\n")
		for _, directive := range section.Directives {
			unit.WriteString(directive.Key + "=" + directive.Value + "\n")
		}
	}

	return unit.String()
}

// String returns the rendered unit file
func (d ServiceDefinition) String() string {
	return d.Render()
}

// WriteTo writes the rendered unit file to w
func (d ServiceDefinition) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.Render())
	return int64(n), err
}
