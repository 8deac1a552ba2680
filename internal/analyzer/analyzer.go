// Package analyzer fetches raw analysis payloads from external document
// understanding services. Payloads are returned untouched; normalizing them
// is the job of the analysis package.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is a resume plus an optional job description to match it against.
type Document struct {
	Name           string
	Content        []byte
	JobDescription string
}

// Provider returns the raw JSON analysis of a document.
type Provider interface {
	Name() string
	Analyze(ctx context.Context, doc *Document) ([]byte, error)
}

// LoadDocument reads a resume and, when jobDescriptionPath is set, a job description.
func LoadDocument(path, jobDescriptionPath string) (*Document, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("resume path is required")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume %q: %w", path, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("resume %q is empty", path)
	}

	doc := &Document{
		Name:    filepath.Base(path),
		Content: content,
	}

	if jobDescriptionPath = strings.TrimSpace(jobDescriptionPath); jobDescriptionPath != "" {
		jd, err := os.ReadFile(jobDescriptionPath)
		if err != nil {
			return nil, fmt.Errorf("reading job description %q: %w", jobDescriptionPath, err)
		}
		doc.JobDescription = strings.TrimSpace(string(jd))
	}

	return doc, nil
}
