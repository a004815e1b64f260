// FILE: lixenwraith/cliconfig/docstring.go
package cliconfig

import (
	"regexp"
	"strings"
)

// ParamDoc is one documented parameter.
type ParamDoc struct {
	Name        string
	Description string
}

var (
	restParam    = regexp.MustCompile(`^:param\s+(?:[^:\s]+\s+)?([A-Za-z_][\w-]*)\s*:\s*(.*)$`)
	googleHeader = regexp.MustCompile(`^(Args|Arguments|Parameters|Params|Attributes|Fields):\s*$`)
	googleParam  = regexp.MustCompile(`^([A-Za-z_][\w-]*)\s*(?:\([^)]*\))?\s*:\s*(.*)$`)
)

// ParseDoc extracts parameter descriptions from documentation text. It reads
// reST fields (":param name: text") and Google style sections ("Args:" followed
// by indented "name: text" lines). Continuation lines are joined with a space.
func ParseDoc(doc string) []ParamDoc {
	var params []ParamDoc
	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")

	inSection := false
	sectionIndent := -1
	current := -1
	currentIndent := 0

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		indent := len(raw) - len(strings.TrimLeft(raw, " \t"))

		if line == "" {
			current = -1
			continue
		}

		if m := restParam.FindStringSubmatch(line); m != nil {
			params = append(params, ParamDoc{Name: m[1], Description: m[2]})
			current = len(params) - 1
			currentIndent = indent
			inSection = false
			continue
		}

		if googleHeader.MatchString(line) {
			inSection = true
			sectionIndent = indent
			current = -1
			continue
		}

		if inSection {
			if indent <= sectionIndent {
				inSection = false
			} else if current >= 0 && indent > currentIndent {
				appendDescription(&params[current], line)
				continue
			} else if m := googleParam.FindStringSubmatch(line); m != nil {
				params = append(params, ParamDoc{Name: m[1], Description: m[2]})
				current = len(params) - 1
				currentIndent = indent
				continue
			}
		}

		if current >= 0 && indent > currentIndent && !strings.HasPrefix(line, ":") {
			appendDescription(&params[current], line)
			continue
		}
		current = -1
	}

	return params
}

func appendDescription(p *ParamDoc, line string) {
	if p.Description == "" {
		p.Description = line
		return
	}
	p.Description += " " + line
}
