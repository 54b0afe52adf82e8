package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/paramgraph/pkg/errors"
)

// Format is an image format produced by [Render].
type Format string

// Supported image formats. FormatDOT returns the DOT source unchanged.
const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
)

// Formats lists the supported image formats.
var Formats = []Format{FormatDOT, FormatSVG, FormatPNG, FormatJPG}

// ParseFormat validates an image format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatDOT, FormatSVG, FormatPNG, FormatJPG:
		return f, nil
	case "jpeg":
		return FormatJPG, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown image format %q (want dot, svg, png or jpg)", s)
	}
}

// Render lays out DOT source with Graphviz and encodes it as format.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	case FormatJPG:
		gvFormat = graphviz.JPG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown image format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, FormatSVG)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one that
// scales cleanly when embedded in HTML.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
