package render

import (
	"context"
	"testing"

	gwerrors "github.com/matzehuels/graphwalk/pkg/errors"
)

func TestContentType(t *testing.T) {
	tests := map[string]string{
		FormatSVG: "image/svg+xml",
		FormatPNG: "image/png",
		FormatPDF: "application/pdf",
		FormatDOT: "text/vnd.graphviz; charset=utf-8",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestFormatsValidate(t *testing.T) {
	if err := gwerrors.ValidateFormats([]string{"svg", "pdf"}, Formats); err != nil {
		t.Errorf("ValidateFormats() error: %v", err)
	}
	if err := gwerrors.ValidateFormats([]string{"gif"}, Formats); err == nil {
		t.Error("ValidateFormats() should reject gif")
	}
}

func TestToPDFWithoutLibrsvg(t *testing.T) {
	if Available() {
		t.Skip("rsvg-convert is installed")
	}
	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !gwerrors.Is(err, gwerrors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want UNSUPPORTED", err)
	}
}
