package mermaid

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Target identifies one of the rendering endpoints a token can be sent to.
type Target int

const (
	LiveEdit Target = iota
	LiveView
	InkImage
	InkSVG
	InkPDF
)

func (t Target) String() string {
	switch t {
	case LiveEdit:
		return "live-edit"
	case LiveView:
		return "live-view"
	case InkImage:
		return "ink-image"
	case InkSVG:
		return "ink-svg"
	case InkPDF:
		return "ink-pdf"
	}
	return fmt.Sprintf("target(%d)", int(t))
}

// URLBuilder composes mermaid.live and mermaid.ink URLs from pako tokens.
type URLBuilder struct {
	liveBase string
	inkBase  string
}

func NewURLBuilder(liveBase, inkBase string) *URLBuilder {
	return &URLBuilder{
		liveBase: strings.TrimSuffix(liveBase, "/"),
		inkBase:  strings.TrimSuffix(inkBase, "/"),
	}
}

func (b *URLBuilder) EditURL(token string) string {
	return fmt.Sprintf("%s/edit#pako:%s", b.liveBase, token)
}

func (b *URLBuilder) ViewURL(token string) string {
	return fmt.Sprintf("%s/view#pako:%s", b.liveBase, token)
}

// ImageURL builds a raster rendering URL. jpeg is the service default so no
// type parameter is sent for it.
func (b *URLBuilder) ImageURL(token string, format Format, opts RenderOptions) string {
	var q query
	if format != "" && format != FormatJPEG {
		q.add("type", string(format))
	}
	q.addInt("width", opts.Width)
	q.addInt("height", opts.Height)
	q.addFloat("scale", opts.Scale)
	q.add("bgColor", opts.BgColor)
	q.add("theme", opts.Theme)
	return q.appendTo(fmt.Sprintf("%s/img/pako:%s", b.inkBase, token))
}

func (b *URLBuilder) SVGURL(token string, opts RenderOptions) string {
	var q query
	q.add("bgColor", opts.BgColor)
	q.add("theme", opts.Theme)
	q.addInt("width", opts.Width)
	q.addInt("height", opts.Height)
	q.addFloat("scale", opts.Scale)
	return q.appendTo(fmt.Sprintf("%s/svg/pako:%s", b.inkBase, token))
}

func (b *URLBuilder) PDFURL(token string, opts PDFOptions) string {
	var q query
	if opts.Fit {
		q.add("fit", "true")
	}
	q.add("paper", opts.Paper)
	if opts.Landscape {
		q.add("landscape", "true")
	}
	return q.appendTo(fmt.Sprintf("%s/pdf/pako:%s", b.inkBase, token))
}

// RenderURL returns the ink endpoint and URL serving req.Format.
func (b *URLBuilder) RenderURL(token string, req *DiagramRequest) (Target, string, error) {
	switch req.Format {
	case FormatPNG, FormatJPEG, FormatWEBP:
		return InkImage, b.ImageURL(token, req.Format, req.Options), nil
	case FormatSVG:
		return InkSVG, b.SVGURL(token, req.Options), nil
	case FormatPDF:
		return InkPDF, b.PDFURL(token, req.PDF), nil
	}
	return 0, "", fmt.Errorf("%w: unsupported format: %s", ErrInternal, req.Format)
}

// query keeps parameters in insertion order; url.Values sorts by key.
type query []string

func (q *query) add(key, value string) {
	if value == "" {
		return
	}
	*q = append(*q, url.QueryEscape(key)+"="+url.QueryEscape(value))
}

func (q *query) addInt(key string, value *int) {
	if value != nil {
		q.add(key, strconv.Itoa(*value))
	}
}

func (q *query) addFloat(key string, value *float64) {
	if value != nil {
		q.add(key, strconv.FormatFloat(*value, 'f', -1, 64))
	}
}

func (q query) appendTo(base string) string {
	if len(q) == 0 {
		return base
	}
	return base + "?" + strings.Join(q, "&")
}
