package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/afar2liu/mcp-mermaid-go/internal/config"
	"github.com/afar2liu/mcp-mermaid-go/internal/fetch"
	"github.com/afar2liu/mcp-mermaid-go/internal/mermaid"
	"github.com/afar2liu/mcp-mermaid-go/internal/output"
	"github.com/afar2liu/mcp-mermaid-go/pkg/logger"
)

const CreateMermaidDiagramName = "create-mermaid-diagram"

const createMermaidDiagramDescription = "Create a Mermaid diagram - get URLs for editing/viewing/downloading or save diagram to file. " +
	"action=get_url returns mermaid.live edit and view URLs plus a PNG preview. " +
	"action=save_file renders the diagram through mermaid.ink and writes it to outputPath. " +
	"Supported formats: png (default), jpeg, webp, svg, pdf."

// Metadata is the structured part of a tool response.
type Metadata struct {
	RequestID    string `json:"requestId"`
	DiagramType  string `json:"diagramType"`
	GeneratedAt  string `json:"generatedAt"`
	EditURL      string `json:"editUrl,omitempty"`
	ViewURL      string `json:"viewUrl,omitempty"`
	PreviewURL   string `json:"previewUrl,omitempty"`
	PreviewBytes int    `json:"previewBytes,omitempty"`
	DownloadURL  string `json:"downloadUrl,omitempty"`
	SavedPath    string `json:"savedPath,omitempty"`
	MIMEType     string `json:"mimeType,omitempty"`
	Bytes        int    `json:"bytes,omitempty"`
	Error        string `json:"error,omitempty"`
	ErrorCode    int    `json:"errorCode,omitempty"`
}

// Response is the assembled result of one tool call.
type Response struct {
	Content  []mcp.Content
	Metadata Metadata
}

// MermaidTool serves create-mermaid-diagram. It holds no per-call state and
// is safe for concurrent use.
type MermaidTool struct {
	urls     *mermaid.URLBuilder
	fetcher  fetch.Fetcher
	resolver *output.Resolver
	now      func() time.Time
	newID    func() string
}

func NewMermaidTool(cfg *config.Config, fetcher fetch.Fetcher) *MermaidTool {
	return &MermaidTool{
		urls:     mermaid.NewURLBuilder(cfg.Mermaid.LiveBaseURL, cfg.Mermaid.InkBaseURL),
		fetcher:  fetcher,
		resolver: output.NewResolver(cfg.Output.DefaultDir),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (t *MermaidTool) Definition() (*mcp.Tool, error) {
	schema, err := InputSchema()
	if err != nil {
		return nil, err
	}
	return &mcp.Tool{
		Name:        CreateMermaidDiagramName,
		Description: createMermaidDiagramDescription,
		InputSchema: schema,
	}, nil
}

// InputSchema is the schema inferred from mermaid.Arguments with the enums
// and numeric bounds that struct tags cannot express. mermaid.Validate still
// checks every rule.
func InputSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[mermaid.Arguments]()
	if err != nil {
		return nil, fmt.Errorf("failed to infer input schema: %w", err)
	}

	enums := map[string][]string{
		"action": mermaid.Actions,
		"format": mermaid.Formats,
		"theme":  mermaid.Themes,
		"paper":  mermaid.Papers,
	}
	for name, values := range enums {
		prop, ok := schema.Properties[name]
		if !ok {
			return nil, fmt.Errorf("input schema has no %q property", name)
		}
		prop.Enum = make([]any, 0, len(values))
		for _, v := range values {
			prop.Enum = append(prop.Enum, v)
		}
	}

	for _, name := range []string{"width", "height"} {
		prop, ok := schema.Properties[name]
		if !ok {
			return nil, fmt.Errorf("input schema has no %q property", name)
		}
		prop.Minimum = floatPtr(float64(mermaid.MinDimension))
		prop.Maximum = floatPtr(float64(mermaid.MaxDimension))
	}

	scale, ok := schema.Properties["scale"]
	if !ok {
		return nil, fmt.Errorf("input schema has no %q property", "scale")
	}
	scale.ExclusiveMinimum = floatPtr(0.0)
	scale.Maximum = floatPtr(float64(mermaid.MaxScale))

	return schema, nil
}

// Execute validates args and runs the requested action. Errors wrap
// mermaid.ErrInvalidParams or mermaid.ErrInternal.
func (t *MermaidTool) Execute(ctx context.Context, args mermaid.Arguments) (*Response, error) {
	req, err := mermaid.Validate(args)
	if err != nil {
		return nil, err
	}

	meta := Metadata{
		RequestID:   t.newID(),
		DiagramType: "mermaid",
		GeneratedAt: t.now().UTC().Format(time.RFC3339),
	}
	log := logger.WithFields(logrus.Fields{
		"request_id": meta.RequestID,
		"action":     req.Action,
		"format":     req.Format,
	})

	token, err := mermaid.Encode(req.Diagram)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode diagram: %v", mermaid.ErrInternal, err)
	}

	switch req.Action {
	case mermaid.ActionGetURL:
		return t.getURL(ctx, log, req, token, meta), nil
	case mermaid.ActionSaveFile:
		resp, err := t.saveFile(ctx, log, req, token, meta)
		if err != nil {
			return nil, fmt.Errorf("failed to save file: %w", err)
		}
		return resp, nil
	}
	return nil, fmt.Errorf("%w: unknown action: %s", mermaid.ErrInternal, req.Action)
}

// getURL never fails: a preview that cannot be fetched degrades the response
// to URLs plus a warning.
func (t *MermaidTool) getURL(ctx context.Context, log *logrus.Entry, req *mermaid.DiagramRequest, token string, meta Metadata) *Response {
	meta.EditURL = t.urls.EditURL(token)
	meta.ViewURL = t.urls.ViewURL(token)
	meta.PreviewURL = t.urls.ImageURL(token, mermaid.FormatPNG, req.Options)

	content := []mcp.Content{
		&mcp.TextContent{Text: "Below is the Mermaid Live Editor URL:"},
		&mcp.TextContent{Text: meta.EditURL},
		&mcp.TextContent{Text: "Below is the view-only URL:"},
		&mcp.TextContent{Text: meta.ViewURL},
	}

	res, err := t.fetcher.Fetch(ctx, meta.PreviewURL, fetch.KindImage)
	if err != nil {
		log.WithError(err).Warn("preview fetch failed")
		meta.Error = err.Error()
		content = append(content, &mcp.TextContent{
			Text: fmt.Sprintf("Warning: the PNG preview could not be generated (%v). The URLs above are still valid.", err),
		})
		return &Response{Content: content, Metadata: meta}
	}

	mimeType := res.MIMEType
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = "image/png"
	}
	meta.MIMEType = mimeType
	meta.PreviewBytes = len(res.Data)

	content = append(content,
		&mcp.TextContent{Text: "Below is the PNG image:"},
		&mcp.ImageContent{Data: res.Data, MIMEType: mimeType},
	)
	log.WithField("bytes", len(res.Data)).Info("diagram urls generated")

	return &Response{Content: content, Metadata: meta}
}

func (t *MermaidTool) saveFile(ctx context.Context, log *logrus.Entry, req *mermaid.DiagramRequest, token string, meta Metadata) (*Response, error) {
	path := t.resolver.Resolve(req.OutputPath)

	_, downloadURL, err := t.urls.RenderURL(token, req)
	if err != nil {
		return nil, err
	}
	meta.DownloadURL = downloadURL

	kind := fetch.KindFor(req.Format)
	res, err := t.fetcher.Fetch(ctx, downloadURL, kind)
	if err != nil {
		return nil, err
	}

	if kind.IsText() {
		err = output.SaveText(path, res.Text())
	} else {
		err = output.Save(path, res.Data)
	}
	if err != nil {
		return nil, err
	}

	meta.SavedPath = path
	meta.MIMEType = res.MIMEType
	meta.Bytes = len(res.Data)
	log.WithFields(logrus.Fields{"path": path, "bytes": len(res.Data)}).Info("diagram saved")

	return &Response{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Below is the saved file path:"},
			&mcp.TextContent{Text: path},
		},
		Metadata: meta,
	}, nil
}

// Handle adapts Execute to the MCP tool handler signature. Classified errors
// become error results rather than protocol failures. The caller's
// cancellation is not propagated; the fetch timeout bounds the call.
func (t *MermaidTool) Handle(ctx context.Context, ss *mcp.ServerSession, params *mcp.CallToolParamsFor[mermaid.Arguments]) (*mcp.CallToolResultFor[Metadata], error) {
	resp, err := t.Execute(context.WithoutCancel(ctx), params.Arguments)
	if err != nil {
		return errorResult(err), nil
	}
	return &mcp.CallToolResultFor[Metadata]{
		Content:           resp.Content,
		StructuredContent: resp.Metadata,
	}, nil
}

func errorResult(err error) *mcp.CallToolResultFor[Metadata] {
	code := mermaid.Code(err)

	var text string
	switch {
	case errors.Is(err, mermaid.ErrInvalidParams):
		text = err.Error()
	default:
		logger.Errorf("tool %s failed: %v", CreateMermaidDiagramName, err)
		text = fmt.Sprintf("%v: error executing tool %s: %v", mermaid.ErrInternal, CreateMermaidDiagramName, err)
	}

	return &mcp.CallToolResultFor[Metadata]{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		StructuredContent: Metadata{
			DiagramType: "mermaid",
			Error:       err.Error(),
			ErrorCode:   code,
		},
		IsError: true,
	}
}

// Register adds the enabled tools to server and returns their names.
func Register(server *mcp.Server, cfg *config.Config, fetcher fetch.Fetcher) ([]string, error) {
	if !cfg.Tools.Enabled() {
		logger.Infof("tool %s disabled by configuration", CreateMermaidDiagramName)
		return nil, nil
	}
	tool := NewMermaidTool(cfg, fetcher)
	def, err := tool.Definition()
	if err != nil {
		return nil, err
	}
	mcp.AddTool(server, def, tool.Handle)
	return []string{CreateMermaidDiagramName}, nil
}

func floatPtr(f float64) *float64 { return &f }
