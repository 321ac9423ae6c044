// Package documents discovers and reads prose documents from disk.
//
// Directory scans run inside an os.Root so that nothing outside the scan
// directory is ever opened, whatever symlinks the tree contains. YAML
// frontmatter is stripped from each document and its document_type,
// audience and title keys become review hints.
package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"styleguide/internal/logging"

	"github.com/adrg/frontmatter"
)

const (
	DefaultMaxFileSize int64 = 5 << 20 // 5MB
	DefaultMaxDepth          = 8
)

var (
	ErrFileTooLarge    = errors.New("document exceeds size limit")
	ErrUnsupportedFile = errors.New("unsupported document type")
	ErrNotDirectory    = errors.New("not a directory")
)

// documentExtensions are the file types treated as prose.
var documentExtensions = []string{
	".md", ".mdown", ".mkdn", ".mkd", ".markdown", ".mdx", ".txt",
}

// skipDirs are never descended into.
var skipDirs = []string{
	"node_modules", ".git", "vendor", "target", "build", ".next", "dist", ".cache", "__pycache__", ".vscode", ".idea",
}

// Frontmatter holds the optional review hints a document can declare.
type Frontmatter struct {
	Title        string `yaml:"title"`
	DocumentType string `yaml:"document_type"`
	Audience     string `yaml:"audience"`
}

// Document is one prose file with its frontmatter removed.
type Document struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	Title        string `json:"title,omitempty"`
	DocumentType string `json:"document_type,omitempty"`
	Audience     string `json:"audience,omitempty"`
	Content      string `json:"-"`
	Size         int64  `json:"size"`
}

// Options bounds what a Loader accepts.
type Options struct {
	MaxFileSize int64
	MaxDepth    int
}

// Loader reads single files and scans directories.
type Loader struct {
	opts   Options
	logger *logging.AppLogger
}

// NewLoader returns a Loader. Zero options take their defaults.
func NewLoader(opts Options, logger *logging.AppLogger) *Loader {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &Loader{opts: opts, logger: logger}
}

// IsDocument reports whether a file name has a supported extension.
func IsDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains(documentExtensions, ext)
}

// ReadFile loads one document. Any extension is accepted for an explicitly
// named file; only the size limit applies.
func (l *Loader) ReadFile(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access document: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnsupportedFile, path)
	}
	if info.Size() > l.opts.MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, path, info.Size(), l.opts.MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Parse(filepath.Base(path), path, data)
}

// Parse strips frontmatter from data and builds a Document.
func Parse(name, path string, data []byte) (*Document, error) {
	var matter Frontmatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &matter)
	if err != nil {
		return nil, fmt.Errorf("invalid frontmatter in %s: %w", name, err)
	}
	return &Document{
		Name:         name,
		Path:         path,
		Title:        strings.TrimSpace(matter.Title),
		DocumentType: strings.TrimSpace(matter.DocumentType),
		Audience:     strings.TrimSpace(matter.Audience),
		Content:      string(body),
		Size:         int64(len(data)),
	}, nil
}

// Scan walks dir for documents. Unreadable entries, oversized files and
// files with broken frontmatter are logged and skipped. Paths in the result
// are relative to dir.
func (l *Loader) Scan(ctx context.Context, dir string) ([]Document, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("scan path cannot be empty")
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve scan path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access scan path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, absPath)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot create secure scan root: %w", err)
	}
	defer root.Close()

	s := &scan{loader: l, root: root, visited: make(map[string]bool)}
	if err := s.walk(ctx, ".", 1); err != nil {
		return nil, err
	}

	l.logger.Debug("Scanned directory for documents", "dir", absPath, "documents", len(s.docs), "skipped", s.skipped)
	return s.docs, nil
}

type scan struct {
	loader  *Loader
	root    *os.Root
	visited map[string]bool
	docs    []Document
	skipped int
}

func (s *scan) walk(ctx context.Context, rel string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth > s.loader.opts.MaxDepth {
		return nil
	}
	clean := filepath.Clean(rel)
	if s.visited[clean] {
		return nil
	}
	s.visited[clean] = true

	dir, err := s.root.Open(rel)
	if err != nil {
		s.skipped++
		return nil
	}
	entries, err := dir.ReadDir(-1)
	dir.Close()
	if err != nil {
		s.skipped++
		return nil
	}

	for _, entry := range entries {
		path := filepath.Join(rel, entry.Name())
		if entry.IsDir() {
			if slices.Contains(skipDirs, entry.Name()) {
				continue
			}
			if err := s.walk(ctx, path, depth+1); err != nil {
				return err
			}
			continue
		}
		if !IsDocument(entry.Name()) {
			continue
		}
		doc, err := s.read(path, entry.Name())
		if err != nil {
			s.loader.logger.Debug("Skipping document", "path", path, "reason", err)
			s.skipped++
			continue
		}
		s.docs = append(s.docs, *doc)
	}
	return nil
}

func (s *scan) read(path, name string) (*Document, error) {
	f, err := s.root.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, ErrUnsupportedFile
	}
	if info.Size() > s.loader.opts.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, info.Size())
	}

	data, err := io.ReadAll(io.LimitReader(f, s.loader.opts.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read: %w", err)
	}
	return Parse(name, path, data)
}
