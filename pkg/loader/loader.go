// Package loader splits the source specification document into sections for
// indexing. Each section's text starts with its heading line, which the rest
// of the pipeline treats as the section title.
package loader

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// SplitSections splits markdown content on heading lines. Every section text
// begins with its heading line; content before the first heading, or a
// document with no headings at all, becomes a single section.
func SplitSections(content string) []string {
	var sections []string
	var current strings.Builder

	flush := func() {
		text := strings.TrimSpace(current.String())
		if text != "" {
			sections = append(sections, text)
		}
		current.Reset()
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	return sections
}

// LoadFile reads a document and splits it into sections.
func LoadFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}

	sections := SplitSections(string(content))
	if len(sections) == 0 {
		return nil, fmt.Errorf("loader: %s contains no text", path)
	}
	return sections, nil
}
