// Package ingestion extracts plain text from uploaded PDF and PowerPoint documents.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Kind is a supported document format.
type Kind string

const (
	KindPDF         Kind = "pdf"
	KindPPTX        Kind = "pptx"
	KindUnsupported Kind = ""
)

// Document is an uploaded file held in memory.
type Document struct {
	Name string // File name; the extension selects the parser
	Data []byte
}

// Kind returns the document format from its case-insensitive extension.
func (d Document) Kind() Kind {
	switch strings.ToLower(filepath.Ext(d.Name)) {
	case ".pdf":
		return KindPDF
	case ".pptx":
		return KindPPTX
	default:
		return KindUnsupported
	}
}

// LoadDocuments reads files from disk in the given order.
func LoadDocuments(paths []string) ([]Document, error) {
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("file not found: %w", err)
			}
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		docs = append(docs, Document{Name: filepath.Base(path), Data: data})
	}
	return docs, nil
}

// ExtractText returns the text of every PDF and PPTX document, in input order,
// separated by a blank line and trimmed. Other formats are skipped. A document that
// fails to parse contributes empty text.
func ExtractText(docs []Document, logger *zap.Logger) string {
	if logger == nil {
		logger = zap.NewNop()
	}

	var texts []string
	for _, doc := range docs {
		var (
			text string
			err  error
		)
		switch doc.Kind() {
		case KindPDF:
			logger.Info("parsing PDF", zap.String("file", doc.Name))
			text, err = ExtractPDF(doc.Data)
		case KindPPTX:
			logger.Info("parsing PPTX", zap.String("file", doc.Name))
			text, err = ExtractPPTX(doc.Data)
		default:
			logger.Info("unsupported file type, skipping", zap.String("file", doc.Name))
			continue
		}
		if err != nil {
			logger.Warn("document could not be parsed", zap.String("file", doc.Name), zap.Error(err))
			text = ""
		}
		texts = append(texts, text)
	}

	return strings.TrimSpace(strings.Join(texts, "\n\n"))
}
