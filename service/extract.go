package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ExtractedText is the output of document text extraction
type ExtractedText struct {
	Text           string `json:"text"`
	CharacterCount int    `json:"character_count"`
	PageCount      *int   `json:"page_count,omitempty"`
}

// TextExtractor pulls plain text out of an uploaded contract document.
// PDF/DOCX/image extraction is an external collaborator behind this
// interface; the built-in implementation handles plain text only.
type TextExtractor interface {
	ExtractText(ctx context.Context, filename string, r io.Reader) (*ExtractedText, error)
}

// PlainTextExtractor extracts text from .txt and .md uploads
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a plain-text extractor
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// ExtractText reads the file as UTF-8 text
func (e *PlainTextExtractor) ExtractText(ctx context.Context, filename string, r io.Reader) (*ExtractedText, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md", "":
	default:
		return nil, fmt.Errorf("unsupported file type %q: configure an external extractor for PDF/DOCX", ext)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	text := string(data)
	return &ExtractedText{
		Text:           text,
		CharacterCount: len(text),
	}, nil
}
