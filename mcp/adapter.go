// Package mcp discovers plugin functions from Model Context Protocol
// servers, exposing each server tool as a kernel.Function.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Woland2k/semantic-kernel/kernel"
)

// Client wraps an MCP client session as a plugin source.
type Client struct {
	mcpClient *mcp.Client
	session   *mcp.ClientSession
	timeout   time.Duration
}

// Option configures the MCP client.
type Option func(*clientConfig)

type clientConfig struct {
	timeout time.Duration
}

// WithTimeout sets the per-invocation timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// NewStdioClient starts an MCP server subprocess and connects over
// stdio.
//
// Example:
//
//	client, err := mcp.NewStdioClient(ctx, "./shopping-server", nil)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	fns, err := client.Functions(ctx)
//	registry.Register("ShoppingPlugin", fns...)
func NewStdioClient(ctx context.Context, command string, args []string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	mcpClient := mcp.NewClient(&mcp.Implementation{
		Name:    "semantic-kernel",
		Version: "0.1.0",
	}, nil)

	transport := &mcp.CommandTransport{
		Command: exec.Command(command, args...),
	}

	session, err := mcpClient.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to MCP server: %w", err)
	}

	return &Client{
		mcpClient: mcpClient,
		session:   session,
		timeout:   cfg.timeout,
	}, nil
}

// Functions lists the server's tools as invocable functions, in the
// order the server reports them.
func (c *Client) Functions(ctx context.Context) ([]kernel.Function, error) {
	result, err := c.session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		return nil, fmt.Errorf("listing MCP tools: %w", err)
	}

	fns := make([]kernel.Function, 0, len(result.Tools))
	for i := range result.Tools {
		fns = append(fns, &serverFunction{
			client: c,
			tool:   result.Tools[i],
		})
	}

	return fns, nil
}

// Close closes the MCP session.
func (c *Client) Close() error {
	return c.session.Close()
}

// serverFunction adapts one MCP tool to kernel.Function.
type serverFunction struct {
	client *Client
	tool   *mcp.Tool
}

func (f *serverFunction) Name() string {
	return f.tool.Name
}

func (f *serverFunction) Description() string {
	return f.tool.Description
}

func (f *serverFunction) Parameters() *jsonschema.Schema {
	raw, err := json.Marshal(f.tool.InputSchema)
	if err != nil {
		return &jsonschema.Schema{Type: "object"}
	}

	var s jsonschema.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return &jsonschema.Schema{Type: "object"}
	}
	return &s
}

func (f *serverFunction) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, f.client.timeout)
	defer cancel()

	var arguments map[string]any
	if err := json.Unmarshal(args, &arguments); err != nil {
		return nil, fmt.Errorf("unmarshaling arguments: %w", err)
	}

	result, err := f.client.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      f.tool.Name,
		Arguments: arguments,
	})
	if err != nil {
		return nil, fmt.Errorf("calling MCP tool: %w", err)
	}

	text := flattenContent(result.Content)
	if result.IsError {
		return nil, fmt.Errorf("MCP tool error: %s", text)
	}

	return text, nil
}

// flattenContent joins the textual parts of an MCP tool result.
// Non-text parts are represented as short descriptions.
func flattenContent(content []mcp.Content) string {
	var parts []string
	for _, c := range content {
		switch item := c.(type) {
		case *mcp.TextContent:
			parts = append(parts, item.Text)
		case *mcp.ImageContent:
			parts = append(parts, fmt.Sprintf("[Image: %s, %d bytes]", item.MIMEType, len(item.Data)))
		case *mcp.EmbeddedResource:
			if item.Resource != nil {
				parts = append(parts, fmt.Sprintf("[Resource: %s]", item.Resource.URI))
			} else {
				parts = append(parts, "[Resource: embedded]")
			}
		}
	}
	return strings.Join(parts, "\n")
}
