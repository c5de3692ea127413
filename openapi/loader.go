// Package openapi loads remotely-described plugins. Given the URI of an
// OpenAPI v3 JSON descriptor, it discovers one invocable function per
// operation; executing a function performs the corresponding REST call.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/Woland2k/semantic-kernel/kernel"
	"github.com/Woland2k/semantic-kernel/schema"
)

// Plugin is a set of functions discovered from one descriptor.
type Plugin struct {
	Name        string
	Description string
	functions   []kernel.Function
}

// Functions returns the discovered functions, ordered by path then
// method as they appear in the descriptor.
func (p *Plugin) Functions() []kernel.Function {
	return p.functions
}

// Option configures the loader.
type Option func(*config)

type config struct {
	httpClient *http.Client
	serverURL  string
	headers    http.Header
}

// WithHTTPClient sets the client used for both descriptor fetch and
// function invocation.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *config) {
		cfg.httpClient = c
	}
}

// WithServerURL overrides the server URL from the descriptor.
func WithServerURL(u string) Option {
	return func(cfg *config) {
		cfg.serverURL = u
	}
}

// WithHeader adds a header to every function invocation, e.g. an API
// key for the remote plugin.
func WithHeader(key, value string) Option {
	return func(cfg *config) {
		if cfg.headers == nil {
			cfg.headers = http.Header{}
		}
		cfg.headers.Add(key, value)
	}
}

// Load fetches and parses a descriptor, returning the plugin it
// describes. The loader is opaque to the orchestration loop: the result
// is plain kernel.Functions ready for registration.
//
// Example:
//
//	plugin, err := openapi.Load(ctx, "https://shop.example.com/openapi.json")
//	if err != nil {
//	    return err
//	}
//	registry.Register("ShoppingPlugin", plugin.Functions()...)
func Load(ctx context.Context, descriptorURL string, opts ...Option) (*Plugin, error) {
	cfg := &config{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(cfg)
	}

	doc, err := fetchDescriptor(ctx, cfg.httpClient, descriptorURL)
	if err != nil {
		return nil, err
	}

	serverURL := cfg.serverURL
	if serverURL == "" {
		if len(doc.Servers) == 0 {
			return nil, fmt.Errorf("descriptor %s declares no servers; use WithServerURL", descriptorURL)
		}
		serverURL = doc.Servers[0].URL
	}
	if !strings.Contains(serverURL, "://") {
		// Relative server URL: resolve against the descriptor location.
		base, err := url.Parse(descriptorURL)
		if err != nil {
			return nil, fmt.Errorf("resolving server URL: %w", err)
		}
		ref, err := url.Parse(serverURL)
		if err != nil {
			return nil, fmt.Errorf("resolving server URL: %w", err)
		}
		serverURL = base.ResolveReference(ref).String()
	}

	plugin := &Plugin{
		Name:        pluginName(doc.Info.Title),
		Description: doc.Info.Description,
	}

	// Sort paths for a deterministic function order; JSON object keys
	// carry no order through encoding/json.
	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := doc.Paths[path]
		for _, m := range []struct {
			method string
			op     *operation
		}{
			{http.MethodGet, item.Get},
			{http.MethodPost, item.Post},
			{http.MethodPut, item.Put},
			{http.MethodPatch, item.Patch},
			{http.MethodDelete, item.Delete},
		} {
			if m.op == nil {
				continue
			}
			fn, err := newRestFunction(m.method, serverURL, path, m.op, cfg)
			if err != nil {
				return nil, fmt.Errorf("operation %s %s: %w", m.method, path, err)
			}
			plugin.functions = append(plugin.functions, fn)
		}
	}

	if len(plugin.functions) == 0 {
		return nil, fmt.Errorf("descriptor %s declares no operations", descriptorURL)
	}

	return plugin, nil
}

func fetchDescriptor(ctx context.Context, client *http.Client, descriptorURL string) (*document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, descriptorURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating descriptor request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching descriptor: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching descriptor: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing descriptor: %w", err)
	}
	if len(doc.Paths) == 0 {
		return nil, fmt.Errorf("descriptor has no paths")
	}

	return &doc, nil
}

// pluginName derives a namespace-friendly name from the descriptor
// title, e.g. "Shopping Cart API" -> "ShoppingCartAPI".
func pluginName(title string) string {
	if title == "" {
		return "Plugin"
	}
	fields := strings.FieldsFunc(title, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '.'
	})
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strings.ToUpper(f[:1]))
		b.WriteString(f[1:])
	}
	return b.String()
}

// parameterSchema assembles the declaration schema for an operation
// from its parameters and request body properties.
func parameterSchema(op *operation) ([]schema.Property, bool, error) {
	props := make([]schema.Property, 0, len(op.Parameters))
	for _, p := range op.Parameters {
		typ := ""
		if p.Schema != nil {
			typ = p.Schema.Type
		}
		props = append(props, schema.Property{
			Name:        p.Name,
			Type:        typ,
			Description: p.Description,
			Required:    p.Required,
		})
	}

	hasBody := false
	if op.RequestBody != nil {
		media, ok := op.RequestBody.Content["application/json"]
		if !ok {
			return nil, false, fmt.Errorf("request body must be application/json")
		}
		hasBody = true
		if len(media.Schema) > 0 {
			var bs bodySchema
			if err := json.Unmarshal(media.Schema, &bs); err != nil {
				return nil, false, fmt.Errorf("parsing body schema: %w", err)
			}
			required := make(map[string]bool, len(bs.Required))
			for _, r := range bs.Required {
				required[r] = true
			}
			names := make([]string, 0, len(bs.Properties))
			for n := range bs.Properties {
				names = append(names, n)
			}
			sort.Strings(names)
			for _, n := range names {
				f := bs.Properties[n]
				props = append(props, schema.Property{
					Name:        n,
					Type:        f.Type,
					Description: f.Description,
					Required:    required[n],
				})
			}
		}
	}

	return props, hasBody, nil
}
