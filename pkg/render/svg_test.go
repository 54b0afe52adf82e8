package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/paramgraph/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{"png", FormatPNG, false},
		{"jpeg", FormatJPG, false},
		{"dot", FormatDOT, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ParseFormat(%q) code = %s", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	dot := ToDOT(testGraph(), Options{})
	got, err := Render(context.Background(), dot, FormatDOT)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != dot {
		t.Error("dot format should return the source unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testGraph(), Options{Detailed: true}))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("output is not svg")
	}
	if !bytes.Contains(svg, []byte("User.findMany")) {
		t.Error("svg should contain root labels")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := `<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`
	got := string(normalizeViewBox([]byte(in)))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := "<svg><g/></svg>"
	if got := string(normalizeViewBox([]byte(plain))); got != plain {
		t.Errorf("svg without viewBox should be unchanged, got %s", got)
	}
}
