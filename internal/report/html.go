// Copyright Immersive Collective, 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md renders GitHub-flavored markdown; the combined document uses fenced
// code blocks and bold text.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// WriteHTML renders the combined markdown to all_text.html. It is an
// optional artifact; failures are still fatal once the caller opts in,
// same as the other combined outputs.
func WriteHTML(outDir, combinedMarkdown string) error {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>OCR Output</title>\n</head>\n<body>\n")
	if err := md.Convert([]byte(combinedMarkdown), &buf); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	buf.WriteString("</body>\n</html>\n")

	if err := os.WriteFile(filepath.Join(outDir, HTMLFile), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", HTMLFile, err)
	}
	return nil
}
