// Package extract reads the per-page text of input PDF documents.
package extract

// Document is one input PDF: its path plus the plain text of every page.
// Page index is the slice index (0-based). Identity is Path.
type Document struct {
	Path  string
	Pages []string
}
