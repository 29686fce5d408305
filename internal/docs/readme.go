// Package docs generates the command reference section of README.md.
package docs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/keshon/hizollo/internal/command"
	"github.com/keshon/hizollo/internal/help"
)

// DefaultTemplate is used when no README.md.tmpl is present.
const DefaultTemplate = `# {{.BotName}}

Prefix commands start with ` + "`{{.Prefix}}`" + `; every command is also available as a slash command.

## Commands

{{.CommandSections}}`

// CommandSections lists visible commands grouped by category in display
// order. Groups are expanded into their members.
func CommandSections(reg *command.Registry) string {
	var buf bytes.Buffer
	for _, t := range command.Types() {
		if t == command.TypeDeveloper {
			continue
		}
		var lines []string
		for c := range reg.Iterate(command.OfType(t)) {
			res := reg.Resolve(c.Name, "")
			if res.Kind() == command.KindGroup {
				for _, sub := range res.Group().Commands() {
					lines = append(lines, fmt.Sprintf("- **/%s %s** — %s", c.Name, sub.Name, sub.Description))
				}
				continue
			}
			lines = append(lines, fmt.Sprintf("- **/%s** — %s", c.Name, c.Description))
		}
		if len(lines) == 0 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "### %s\n\n%s\n", help.CategoryName(t), strings.Join(lines, "\n"))
	}
	return buf.String()
}

// Data feeds the README template.
type Data struct {
	BotName         string
	Prefix          string
	CommandSections string
}

// WriteReadme renders tmpl (DefaultTemplate when empty) to w.
func WriteReadme(w io.Writer, reg *command.Registry, tmpl string, data Data) error {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	t, err := template.New("readme").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parse readme template: %w", err)
	}
	data.CommandSections = CommandSections(reg)
	return t.Execute(w, data)
}

// UpdateReadme writes outPath from tmplPath, falling back to the default
// template when tmplPath does not exist.
func UpdateReadme(reg *command.Registry, tmplPath, outPath string, data Data) error {
	tmpl := ""
	raw, err := os.ReadFile(tmplPath)
	switch {
	case err == nil:
		tmpl = string(raw)
	case !os.IsNotExist(err):
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteReadme(f, reg, tmpl, data)
}
