package openapi

import "encoding/json"

// document is the subset of an OpenAPI v3 descriptor this loader reads.
type document struct {
	OpenAPI string              `json:"openapi"`
	Info    info                `json:"info"`
	Servers []server            `json:"servers"`
	Paths   map[string]pathItem `json:"paths"`
}

type info struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

type server struct {
	URL string `json:"url"`
}

type pathItem struct {
	Get    *operation `json:"get"`
	Post   *operation `json:"post"`
	Put    *operation `json:"put"`
	Patch  *operation `json:"patch"`
	Delete *operation `json:"delete"`
}

type operation struct {
	OperationID string       `json:"operationId"`
	Summary     string       `json:"summary"`
	Description string       `json:"description"`
	Parameters  []parameter  `json:"parameters"`
	RequestBody *requestBody `json:"requestBody"`
}

type parameter struct {
	Name        string       `json:"name"`
	In          string       `json:"in"` // "path", "query", or "header"
	Description string       `json:"description"`
	Required    bool         `json:"required"`
	Schema      *paramSchema `json:"schema"`
}

type paramSchema struct {
	Type string `json:"type"`
}

type requestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]mediaType `json:"content"`
}

type mediaType struct {
	Schema json.RawMessage `json:"schema"`
}

// bodySchema is the decoded form of a request body's JSON schema.
type bodySchema struct {
	Type       string               `json:"type"`
	Properties map[string]bodyField `json:"properties"`
	Required   []string             `json:"required"`
}

type bodyField struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}
