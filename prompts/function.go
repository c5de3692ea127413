package prompts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/invopop/jsonschema"

	"github.com/Woland2k/semantic-kernel/schema"
	"github.com/Woland2k/semantic-kernel/transport"
)

// promptFunction is a kernel.Function whose body is a rendered prompt
// sent to a completion transport.
type promptFunction struct {
	name        string
	description string
	params      []promptParam
	temperature *float64
	maxTokens   *int
	tmpl        *template.Template
	schema      *jsonschema.Schema
	cfg         *config
}

func newPromptFunction(name string, fm *frontmatter, tmpl *template.Template, cfg *config) *promptFunction {
	props := make([]schema.Property, 0, len(fm.Parameters))
	for _, p := range fm.Parameters {
		props = append(props, schema.Property{
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
			Required:    p.Required,
		})
	}

	return &promptFunction{
		name:        name,
		description: fm.Description,
		params:      fm.Parameters,
		temperature: fm.Temperature,
		maxTokens:   fm.MaxTokens,
		tmpl:        tmpl,
		schema:      schema.Object(props...),
		cfg:         cfg,
	}
}

func (f *promptFunction) Name() string {
	return f.name
}

func (f *promptFunction) Description() string {
	return f.description
}

func (f *promptFunction) Parameters() *jsonschema.Schema {
	return f.schema
}

// Execute renders the template with the call arguments and sends the
// result as a single-message completion request.
func (f *promptFunction) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var values map[string]any
	if err := json.Unmarshal(args, &values); err != nil {
		return nil, fmt.Errorf("unmarshaling arguments: %w", err)
	}
	if values == nil {
		values = make(map[string]any)
	}

	for _, p := range f.params {
		if _, ok := values[p.Name]; ok {
			continue
		}
		if p.Required {
			return nil, fmt.Errorf("missing required parameter %q", p.Name)
		}
		values[p.Name] = ""
	}

	var prompt strings.Builder
	if err := f.tmpl.Execute(&prompt, values); err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	tp, err := f.transport()
	if err != nil {
		return nil, err
	}

	resp, err := tp.Send(ctx, &transport.Request{
		Model: f.cfg.model,
		Messages: []transport.Message{
			{Role: transport.RoleUser, Content: prompt.String()},
		},
		Temperature: f.temperature,
		MaxTokens:   f.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("completing prompt: %w", err)
	}

	return resp.Content, nil
}

func (f *promptFunction) transport() (transport.Transport, error) {
	if f.cfg.client != nil {
		return f.cfg.client, nil
	}
	return transport.Get(f.cfg.transportName)
}
