package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/afar2liu/mcp-mermaid-go/internal/mermaid"
	"github.com/afar2liu/mcp-mermaid-go/pkg/logger"
)

const (
	DefaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of a failed response is echoed back.
	maxErrorBody = 200
)

// Kind is the payload a rendering endpoint is expected to return.
type Kind int

const (
	KindImage Kind = iota
	KindSVG
	KindPDF
)

// KindFor maps an output format onto the payload kind it produces.
func KindFor(format mermaid.Format) Kind {
	switch format {
	case mermaid.FormatSVG:
		return KindSVG
	case mermaid.FormatPDF:
		return KindPDF
	}
	return KindImage
}

// IsText reports whether payloads of this kind are UTF-8 text.
func (k Kind) IsText() bool {
	return k == KindSVG
}

func (k Kind) accept() string {
	switch k {
	case KindSVG:
		return "image/svg+xml,text/xml;q=0.9,*/*;q=0.8"
	case KindPDF:
		return "application/pdf,*/*;q=0.8"
	}
	return "image/*,*/*;q=0.8"
}

// Result is a fetched rendering.
type Result struct {
	Data     []byte
	Kind     Kind
	MIMEType string
}

// Text returns the payload as a string; meaningful for text kinds.
func (r *Result) Text() string {
	return string(r.Data)
}

// Fetcher retrieves a rendering from a built URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string, kind Kind) (*Result, error)
}

// FailureKind classifies a failed fetch.
type FailureKind string

const (
	FailureNetwork FailureKind = "network"
	FailureTimeout FailureKind = "timeout"
	FailureStatus  FailureKind = "status"
)

// Error describes a failed fetch. It matches mermaid.ErrInternal under
// errors.Is.
type Error struct {
	Kind       FailureKind
	URL        string
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case FailureStatus:
		msg := fmt.Sprintf("request to %s failed with status %s", e.URL, e.Status)
		if e.Body != "" {
			msg += ": " + e.Body
		}
		return msg
	case FailureTimeout:
		return fmt.Sprintf("request to %s timed out: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{mermaid.ErrInternal}
	}
	return []error{mermaid.ErrInternal, e.Err}
}

// HTTPFetcher performs a single GET per call. There are no retries; the
// client timeout is the only bound on a request.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

func NewHTTPFetcher(client *http.Client, userAgent string) *HTTPFetcher {
	if client == nil {
		client = NewHTTPClient(DefaultTimeout)
	}
	return &HTTPFetcher{client: client, userAgent: userAgent}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string, kind Kind) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Kind: FailureNetwork, URL: url, Err: err}
	}
	req.Header.Set("Accept", kind.accept())
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(url, err)
	}

	logger.WithFields(logrus.Fields{
		"url":      url,
		"status":   resp.StatusCode,
		"bytes":    len(data),
		"duration": time.Since(start).String(),
	}).Debug("fetched rendering")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{
			Kind:       FailureStatus,
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       truncate(strings.TrimSpace(string(data)), maxErrorBody),
		}
	}

	return &Result{
		Data:     data,
		Kind:     kind,
		MIMEType: mimetype.Detect(data).String(),
	}, nil
}

func classify(url string, err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: FailureTimeout, URL: url, Err: err}
	}
	return &Error{Kind: FailureNetwork, URL: url, Err: err}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
