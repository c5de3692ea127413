package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/Woland2k/semantic-kernel/schema"
)

// restFunction is a kernel.Function backed by one remote operation.
type restFunction struct {
	name        string
	description string
	method      string
	serverURL   string
	path        string
	params      []parameter
	hasBody     bool
	schema      *jsonschema.Schema
	client      *http.Client
	headers     http.Header
}

func newRestFunction(method, serverURL, path string, op *operation, cfg *config) (*restFunction, error) {
	name := op.OperationID
	if name == "" {
		return nil, fmt.Errorf("operationId is required")
	}

	description := op.Description
	if description == "" {
		description = op.Summary
	}

	props, hasBody, err := parameterSchema(op)
	if err != nil {
		return nil, err
	}

	return &restFunction{
		name:        name,
		description: description,
		method:      method,
		serverURL:   strings.TrimSuffix(serverURL, "/"),
		path:        path,
		params:      op.Parameters,
		hasBody:     hasBody,
		schema:      schema.Object(props...),
		client:      cfg.httpClient,
		headers:     cfg.headers,
	}, nil
}

func (f *restFunction) Name() string {
	return f.name
}

func (f *restFunction) Description() string {
	return f.description
}

func (f *restFunction) Parameters() *jsonschema.Schema {
	return f.schema
}

// Execute performs the REST call. Arguments are routed to path, query,
// or header slots as declared; anything left over becomes the JSON
// request body when the operation accepts one.
func (f *restFunction) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	var values map[string]any
	if err := json.Unmarshal(args, &values); err != nil {
		return nil, fmt.Errorf("unmarshaling arguments: %w", err)
	}

	path := f.path
	query := url.Values{}
	header := http.Header{}
	for k, vs := range f.headers {
		header[k] = vs
	}

	for _, p := range f.params {
		v, ok := values[p.Name]
		if !ok {
			if p.Required {
				return nil, fmt.Errorf("missing required parameter %q", p.Name)
			}
			continue
		}
		s := argString(v)
		switch p.In {
		case "path":
			path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(s))
		case "query":
			query.Set(p.Name, s)
		case "header":
			header.Set(p.Name, s)
		default:
			return nil, fmt.Errorf("unsupported parameter location %q", p.In)
		}
		delete(values, p.Name)
	}

	var body io.Reader
	if f.hasBody && len(values) > 0 {
		payload, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("marshaling body: %w", err)
		}
		body = bytes.NewReader(payload)
		header.Set("Content-Type", "application/json")
	}

	reqURL := f.serverURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, f.method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = header

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", f.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%s returned status %d: %s", f.name, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return &Result{
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}, nil
}

// argString renders an argument value for a path, query, or header
// slot. JSON numbers arrive as float64; integral ones print without an
// exponent or trailing zeros.
func argString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	case bool:
		return fmt.Sprintf("%t", x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(b)
	}
}

// Result is the structured outcome of a remote invocation.
type Result struct {
	StatusCode int
	Body       string
}

// Content implements kernel.StructuredOutput.
func (r *Result) Content() string {
	return r.Body
}
