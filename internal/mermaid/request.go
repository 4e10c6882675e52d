package mermaid

// Action selects what the tool does with the encoded diagram.
type Action string

const (
	ActionGetURL   Action = "get_url"
	ActionSaveFile Action = "save_file"
)

// Format is an output rendering format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWEBP Format = "webp"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
)

// Arguments are the raw create-mermaid-diagram call arguments. Optional
// values are pointers so an absent field is distinguishable from a zero one.
type Arguments struct {
	Action     string   `json:"action" jsonschema:"Whether to get diagram URLs (get_url) or save the diagram as a file (save_file)."`
	Diagram    string   `json:"diagram" jsonschema:"The Mermaid diagram code."`
	OutputPath string   `json:"outputPath,omitempty" jsonschema:"Path where to save the file (required when action is save_file). Relative paths resolve against the default output directory."`
	Format     string   `json:"format,omitempty" jsonschema:"Output format for save_file: png (default) jpeg webp svg or pdf."`
	Width      *float64 `json:"width,omitempty" jsonschema:"Width in pixels (1-10000) for image/SVG output."`
	Height     *float64 `json:"height,omitempty" jsonschema:"Height in pixels (1-10000) for image/SVG output."`
	Scale      *float64 `json:"scale,omitempty" jsonschema:"Scale factor greater than 0 and at most 10 for image/SVG output."`
	BgColor    *string  `json:"bgColor,omitempty" jsonschema:"Background color (e.g. white or #FFFFFF) for image/SVG output."`
	Theme      *string  `json:"theme,omitempty" jsonschema:"Mermaid theme: default neutral dark or forest."`
	Fit        *bool    `json:"fit,omitempty" jsonschema:"Fit the diagram to the page size (PDF only)."`
	Paper      *string  `json:"paper,omitempty" jsonschema:"Paper size for PDF output: a3 a4 or a5."`
	Landscape  *bool    `json:"landscape,omitempty" jsonschema:"Use landscape orientation (PDF only)."`
}

// RenderOptions apply to raster and SVG renderings.
type RenderOptions struct {
	Width   *int
	Height  *int
	Scale   *float64
	BgColor string
	Theme   string
}

// PDFOptions apply to PDF renderings.
type PDFOptions struct {
	Fit       bool
	Paper     string
	Landscape bool
}

// DiagramRequest is a validated tool call.
type DiagramRequest struct {
	Diagram    string
	Action     Action
	Format     Format
	OutputPath string
	Options    RenderOptions
	PDF        PDFOptions
}
