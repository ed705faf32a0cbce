package fs

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/quicknotes/pkg/core"
)

// codec converts between a record and its file content. The ID is never
// stored in the file; it is the file's base name.
type codec[T any] interface {
	Parse(id string, data []byte) (T, error)
	Serialize(v T) ([]byte, error)
}

var (
	frontmatterOpen  = []byte("---\n")
	frontmatterClose = []byte("\n---\n")
)

// noteFrontmatter is the YAML header of a note file.
type noteFrontmatter struct {
	Title      string    `yaml:"title"`
	CategoryID string    `yaml:"category_id,omitempty"`
	Pinned     bool      `yaml:"pinned,omitempty"`
	Archived   bool      `yaml:"archived,omitempty"`
	Completed  bool      `yaml:"completed,omitempty"`
	CreatedAt  time.Time `yaml:"created_at"`
	ModifiedAt time.Time `yaml:"modified_at"`
}

// markdownSerializer stores a note as YAML frontmatter followed by the
// content verbatim.
type markdownSerializer struct{}

func (markdownSerializer) Parse(id string, data []byte) (core.Note, error) {
	if !bytes.HasPrefix(data, frontmatterOpen) {
		return core.Note{}, errors.New("missing frontmatter")
	}
	rest := data[len(frontmatterOpen):]

	var header, body []byte
	if bytes.HasPrefix(rest, frontmatterOpen) {
		// Empty header.
		body = rest[len(frontmatterOpen):]
	} else {
		end := bytes.Index(rest, frontmatterClose)
		if end < 0 {
			return core.Note{}, errors.New("unterminated frontmatter")
		}
		header = rest[:end+1]
		body = rest[end+len(frontmatterClose):]
	}

	var fm noteFrontmatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return core.Note{}, fmt.Errorf("invalid frontmatter: %w", err)
	}

	return core.Note{
		ID:          id,
		Title:       fm.Title,
		Content:     string(body),
		CategoryID:  fm.CategoryID,
		IsPinned:    fm.Pinned,
		IsArchived:  fm.Archived,
		IsCompleted: fm.Completed,
		CreatedAt:   fm.CreatedAt,
		ModifiedAt:  fm.ModifiedAt,
	}, nil
}

func (markdownSerializer) Serialize(n core.Note) ([]byte, error) {
	header, err := yaml.Marshal(noteFrontmatter{
		Title:      n.Title,
		CategoryID: n.CategoryID,
		Pinned:     n.IsPinned,
		Archived:   n.IsArchived,
		Completed:  n.IsCompleted,
		CreatedAt:  n.CreatedAt,
		ModifiedAt: n.ModifiedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(frontmatterOpen)
	buf.Write(header)
	buf.Write(frontmatterOpen)
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}

// categoryDocument is the YAML body of a category file.
type categoryDocument struct {
	Name       string    `yaml:"name"`
	Icon       string    `yaml:"icon,omitempty"`
	Color      string    `yaml:"color,omitempty"`
	CreatedAt  time.Time `yaml:"created_at"`
	ModifiedAt time.Time `yaml:"modified_at"`
}

// yamlSerializer stores a category as a plain YAML mapping.
type yamlSerializer struct{}

func (yamlSerializer) Parse(id string, data []byte) (core.Category, error) {
	var doc categoryDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return core.Category{}, fmt.Errorf("invalid yaml: %w", err)
	}
	return core.Category{
		ID:         id,
		Name:       doc.Name,
		Icon:       doc.Icon,
		Color:      doc.Color,
		CreatedAt:  doc.CreatedAt,
		ModifiedAt: doc.ModifiedAt,
	}, nil
}

func (yamlSerializer) Serialize(c core.Category) ([]byte, error) {
	data, err := yaml.Marshal(categoryDocument{
		Name:       c.Name,
		Icon:       c.Icon,
		Color:      c.Color,
		CreatedAt:  c.CreatedAt,
		ModifiedAt: c.ModifiedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode category: %w", err)
	}
	return data, nil
}

var (
	_ codec[core.Note]     = markdownSerializer{}
	_ codec[core.Category] = yamlSerializer{}
)
