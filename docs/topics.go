// Package docs embeds the help topics of pfs.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

//go:embed *.md
var docs embed.FS

// Index is the topic listing all the others.
const Index = "readme"

// Get returns the markdown content of a topic. The topic "*" is all the topics
// concatenated.
func Get(topic string) (string, error) {
	if topic == "*" {
		topics, err := All()
		if err != nil {
			return "", err
		}
		return Concat(topics...)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// Concat returns the content of topics, in order, separated by a blank line.
func Concat(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		content, err := Get(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// All returns the names of all the topics but the index, sorted.
func All() ([]string, error) {
	files, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, f := range files {
		if name := strings.TrimSuffix(f, ".md"); name != Index {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics, nil
}

// Title returns the text of the first heading of a topic, or the topic name
// when it has none.
func Title(topic string) string {
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return topic
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			var b strings.Builder
			for line := 0; line < h.Lines().Len(); line++ {
				seg := h.Lines().At(line)
				b.Write(seg.Value(content))
			}
			return strings.TrimSpace(b.String())
		}
	}
	return topic
}
