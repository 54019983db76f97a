package runner

import (
	"context"
	"io"
	"sort"
	"text/template"

	"github.com/quiverhq/quiver/release"
)

const defaultChangelogTemplate = `# {{ .Product }} {{ .Version }}{{ with .Date }} ({{ . }}){{ end }}
{{ range .Sections }}
## {{ .Name }}
{{ range .Issues }}
* {{ .Key }} - {{ .Summary }}
{{- end }}
{{ end }}`

// section order for well-known issue types; anything else sorts after,
// alphabetically.
var sectionOrder = []string{
	"New Feature",
	"Improvement",
	"Bug",
	"Task",
	"Test",
	"Wish",
}

type changelogData struct {
	Product  string
	Version  string
	Date     string
	Sections []changelogSection
}

type changelogSection struct {
	Name   string
	Issues []release.Issue
}

// Changelog renders the release's issues grouped by type.
func (r *Runner) Changelog(ctx context.Context, w io.Writer, version string) error {
	rel, err := r.load(ctx, version)
	if err != nil {
		return err
	}
	issues, err := rel.Issues(ctx)
	if err != nil {
		return err
	}

	byType := make(map[string][]release.Issue)
	for _, issue := range issues {
		byType[issue.Type] = append(byType[issue.Type], issue)
	}

	data := changelogData{
		Product: r.cfg.Product,
		Version: rel.Version.String(),
		Date:    rel.Version.ReleaseDate,
	}
	for _, name := range sectionNames(byType) {
		section := changelogSection{Name: name, Issues: byType[name]}
		sort.Slice(section.Issues, func(i, j int) bool {
			a, erra := section.Issues[i].Number()
			b, errb := section.Issues[j].Number()
			if erra != nil || errb != nil {
				return section.Issues[i].Key < section.Issues[j].Key
			}
			return a < b
		})
		data.Sections = append(data.Sections, section)
	}

	t, err := template.New("changelog").Parse(defaultChangelogTemplate)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

func sectionNames(byType map[string][]release.Issue) []string {
	known := make(map[string]bool, len(sectionOrder))
	var names []string
	for _, name := range sectionOrder {
		if _, ok := byType[name]; ok {
			names = append(names, name)
			known[name] = true
		}
	}
	var rest []string
	for name := range byType {
		if !known[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
