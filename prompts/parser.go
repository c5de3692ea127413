package prompts

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter is the YAML header of a prompt file.
type frontmatter struct {
	Description string        `yaml:"description"`
	Parameters  []promptParam `yaml:"parameters"`
	Temperature *float64      `yaml:"temperature"`
	MaxTokens   *int          `yaml:"max_tokens"`
}

type promptParam struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
}

// parsePromptFile splits a prompt file into its YAML frontmatter and
// template body. Frontmatter is delimited by "---" lines at the start;
// a file without frontmatter is all body.
func parsePromptFile(data []byte) (*frontmatter, string, error) {
	fmBytes, body := splitFrontmatter(data)

	fm := &frontmatter{}
	if len(fmBytes) > 0 {
		if err := yaml.Unmarshal(fmBytes, fm); err != nil {
			return nil, "", fmt.Errorf("parsing frontmatter: %w", err)
		}
	}

	for _, p := range fm.Parameters {
		if p.Name == "" {
			return nil, "", fmt.Errorf("parameter without a name")
		}
	}

	return fm, body, nil
}

func splitFrontmatter(data []byte) (fmBytes []byte, body string) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return nil, string(data)
	}

	var fmLines []string
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			closed = true
			break
		}
		fmLines = append(fmLines, line)
	}
	if !closed {
		return nil, string(data)
	}

	var bodyLines []string
	for scanner.Scan() {
		bodyLines = append(bodyLines, scanner.Text())
	}

	return []byte(strings.Join(fmLines, "\n")), strings.TrimSpace(strings.Join(bodyLines, "\n"))
}
