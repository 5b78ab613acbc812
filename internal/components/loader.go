// Package components parses component-definition files (YAML front
// matter + markdown body, see SPEC_FULL.md §6) and resolves the
// search-path override chain the explorer uses to find them.
//
// The built-in catalog is embedded the way the ancestor library
// embedded its face-detection cascade (processor.go's
// `//go:embed data/facefinder`); later search paths may override a
// built-in definition by name.
package components

import (
	"bufio"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.md
var builtinFS embed.FS

// frontMatter is the YAML header of a component-definition file.
type frontMatter struct {
	Name     string `yaml:"name"`
	Platform string `yaml:"platform"`
}

// Raw is a parsed component-definition file: front matter plus the
// flattened "## Match Rules"/"## Interaction"/"## Grouping" bullet
// key/value pairs, left untyped so the caller (component.go) can build
// its own ComponentDefinition without this package depending on it.
type Raw struct {
	Name     string
	Platform string
	Fields   map[string]string
}

// frontMatterPattern extracts the --- delimited YAML header.
var frontMatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n`)

// bulletPattern extracts "- key: value" lines from the markdown body.
var bulletPattern = regexp.MustCompile(`^\s*-\s*([a-zA-Z0-9_]+)\s*:\s*(.+?)\s*$`)

// Parse parses one component-definition file's bytes. fallbackName is
// used as Name when the front matter omits it, per spec §6.
func Parse(content []byte, fallbackName string) (Raw, error) {
	raw := Raw{Fields: map[string]string{}}

	body := string(content)
	if m := frontMatterPattern.FindStringSubmatch(body); m != nil {
		var fm frontMatter
		if err := yaml.Unmarshal([]byte(m[1]), &fm); err != nil {
			return Raw{}, errors.Wrap(err, "parse front matter")
		}
		raw.Name = fm.Name
		raw.Platform = fm.Platform
		body = body[len(m[0]):]
	}
	if raw.Name == "" {
		raw.Name = fallbackName
	}

	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		if m := bulletPattern.FindStringSubmatch(line); m != nil {
			raw.Fields[m[1]] = m[2]
		}
	}
	if err := scanner.Err(); err != nil {
		return Raw{}, errors.Wrap(err, "scan body")
	}
	return raw, nil
}

// SearchPaths returns the three on-disk locations searched for
// component definitions, in override order, per spec §6. home is
// injected for testability instead of calling os.UserHomeDir directly.
func SearchPaths(home string) []string {
	return []string{
		"./components/",
		filepath.Join(home, ".mirroir-mcp/components/"),
		filepath.Join(home, "mirroir-skills/components/"),
	}
}

// LoadAll loads the embedded built-in catalog, then overlays any
// definitions found on SearchPaths (later paths win by Name). Unparsable
// files are logged by the caller via the returned per-file errors slice
// and otherwise skipped, matching the "Semantic" error taxonomy in
// SPEC_FULL.md §7: a bad component file degrades, it never aborts the
// load.
func LoadAll(home string) (map[string]Raw, []error) {
	catalog := map[string]Raw{}
	var loadErrs []error

	entries, err := builtinFS.ReadDir("builtin")
	if err == nil {
		for _, ent := range entries {
			if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".md") {
				continue
			}
			data, err := builtinFS.ReadFile(filepath.Join("builtin", ent.Name()))
			if err != nil {
				loadErrs = append(loadErrs, errors.Wrapf(err, "read builtin %s", ent.Name()))
				continue
			}
			raw, err := Parse(data, strings.TrimSuffix(ent.Name(), ".md"))
			if err != nil {
				loadErrs = append(loadErrs, errors.Wrapf(err, "parse builtin %s", ent.Name()))
				continue
			}
			catalog[raw.Name] = raw
		}
	}

	for _, dir := range SearchPaths(home) {
		files, err := os.ReadDir(dir)
		if err != nil {
			continue // search path missing is normal, not an error
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".md") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(dir, f.Name()))
			if err != nil {
				loadErrs = append(loadErrs, errors.Wrapf(err, "read %s", f.Name()))
				continue
			}
			raw, err := Parse(data, strings.TrimSuffix(f.Name(), ".md"))
			if err != nil {
				loadErrs = append(loadErrs, errors.Wrapf(err, "parse %s", f.Name()))
				continue
			}
			catalog[raw.Name] = raw
		}
	}

	return catalog, loadErrs
}

// FieldBool parses a Raw field as a boolean, returning ok=false when
// absent so the caller can distinguish "unset" from "false".
func FieldBool(raw Raw, key string) (value bool, ok bool) {
	v, present := raw.Fields[key]
	if !present {
		return false, false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, false
	}
	return b, true
}

// FieldInt parses a Raw field as an int.
func FieldInt(raw Raw, key string, def int) int {
	v, present := raw.Fields[key]
	if !present {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// FieldFloat parses a Raw field as a float64.
func FieldFloat(raw Raw, key string, def float64) float64 {
	v, present := raw.Fields[key]
	if !present {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// FieldString returns a raw field verbatim.
func FieldString(raw Raw, key string) (string, bool) {
	v, ok := raw.Fields[key]
	return v, ok
}

// Describe renders a Raw definition back to a short human string of its
// name and platform.
func Describe(raw Raw) string {
	return fmt.Sprintf("%s (%s)", raw.Name, raw.Platform)
}
