// Package prompts loads prompt-template functions from a directory
// tree. Each markdown file under a plugin subdirectory declares one
// function: YAML frontmatter carries the description and parameters,
// the body is a text/template rendered with the call arguments and sent
// to a completion transport.
//
// Layout:
//
//	prompts/
//	  WriterPlugin/
//	    Summarize.md
//	    Translate.md
package prompts

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"text/template"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Woland2k/semantic-kernel/kernel"
	"github.com/Woland2k/semantic-kernel/transport"
)

// defaultPattern matches one plugin directory level of prompt files.
const defaultPattern = "*/*.md"

// Plugin groups the functions loaded from one subdirectory.
type Plugin struct {
	Name      string
	Functions []kernel.Function
}

// Option configures loading and execution of prompt functions.
type Option func(*config)

type config struct {
	transportName string
	client        transport.Transport
	model         string
	pattern       string
}

// WithTransport selects the registered transport prompt functions call.
func WithTransport(name string) Option {
	return func(c *config) {
		c.transportName = name
	}
}

// WithTransportClient supplies a transport instance directly.
func WithTransportClient(t transport.Transport) Option {
	return func(c *config) {
		c.client = t
	}
}

// WithModel sets the model prompt functions call.
func WithModel(model string) Option {
	return func(c *config) {
		c.model = model
	}
}

// WithPattern overrides the glob used to find prompt files. Doublestar
// syntax, relative to the root, e.g. "**/*.prompt.md".
func WithPattern(pattern string) Option {
	return func(c *config) {
		c.pattern = pattern
	}
}

// Load discovers prompt functions under dir.
//
// Example:
//
//	plugins, err := prompts.Load("./prompts",
//	    prompts.WithTransport("openai"),
//	    prompts.WithModel("gpt-4o-mini"),
//	)
//	for _, p := range plugins {
//	    registry.Register(p.Name, p.Functions...)
//	}
func Load(dir string, opts ...Option) ([]Plugin, error) {
	cfg := &config{pattern: defaultPattern}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.transportName == "" && cfg.client == nil {
		return nil, fmt.Errorf("prompt functions need a transport: use WithTransport or WithTransportClient")
	}
	if cfg.model == "" {
		return nil, fmt.Errorf("prompt functions need a model: use WithModel")
	}

	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, cfg.pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %q: %w", cfg.pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no prompt files under %s match %q", dir, cfg.pattern)
	}

	var plugins []Plugin
	byName := make(map[string]int)

	for _, match := range matches {
		fn, err := loadFunction(fsys, match, cfg)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", match, err)
		}

		ns := namespaceFor(match)
		idx, ok := byName[ns]
		if !ok {
			idx = len(plugins)
			byName[ns] = idx
			plugins = append(plugins, Plugin{Name: ns})
		}
		plugins[idx].Functions = append(plugins[idx].Functions, fn)
	}

	return plugins, nil
}

// namespaceFor derives the plugin namespace from a match path: its
// first directory component, or the file name for root-level matches.
func namespaceFor(match string) string {
	dir := path.Dir(match)
	if dir == "." {
		return functionName(match)
	}
	parts := strings.Split(dir, "/")
	return parts[0]
}

func functionName(match string) string {
	base := path.Base(match)
	return strings.TrimSuffix(base, path.Ext(base))
}

func loadFunction(fsys fs.FS, match string, cfg *config) (kernel.Function, error) {
	data, err := fs.ReadFile(fsys, match)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	fm, body, err := parsePromptFile(data)
	if err != nil {
		return nil, err
	}
	if body == "" {
		return nil, fmt.Errorf("prompt body is empty")
	}

	name := functionName(match)
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	return newPromptFunction(name, fm, tmpl, cfg), nil
}
