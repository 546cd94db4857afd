package pdfcontent

import "testing"

func TestExtractRejectsGarbage(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Extract([]byte("this is not a pdf document")); err == nil {
		t.Error("Extract should fail on non-PDF input")
	}
}

func TestExtractRejectsEmptyInput(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Extract(nil); err == nil {
		t.Error("Extract should fail on empty input")
	}
}
