package mermaid

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Bounds on numeric render options. Scale is exclusive at zero.
const (
	MinDimension = 1
	MaxDimension = 10000
	MaxScale     = 10
)

// Accepted values for the enumerated arguments.
var (
	Actions = []string{string(ActionGetURL), string(ActionSaveFile)}
	Formats = []string{"png", "jpeg", "webp", "svg", "pdf"}
	Themes  = []string{"default", "neutral", "dark", "forest"}
	Papers  = []string{"a3", "a4", "a5"}

	cssColorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|(rgb|rgba|hsl|hsla)\([^()]*\))$`)
)

// Validate checks raw arguments and returns the typed request. Rules run in a
// fixed order and the first failure is returned, wrapped in ErrInvalidParams.
func Validate(args Arguments) (*DiagramRequest, error) {
	if strings.TrimSpace(args.Diagram) == "" {
		return nil, invalid("invalid diagram: must be a non-empty string")
	}

	if !oneOf(args.Action, Actions) {
		return nil, invalid("invalid action %q. Must be one of: %s", args.Action, strings.Join(Actions, ", "))
	}
	action := Action(args.Action)

	req := &DiagramRequest{
		Diagram: args.Diagram,
		Action:  action,
		Format:  FormatPNG,
	}

	if action == ActionSaveFile {
		if strings.TrimSpace(args.OutputPath) == "" {
			return nil, invalid("outputPath is required when action is 'save_file'")
		}
		req.OutputPath = args.OutputPath
	}

	if args.Format != "" {
		if !oneOf(args.Format, Formats) {
			return nil, invalid("invalid output format %q. Must be one of: %s", args.Format, strings.Join(Formats, ", "))
		}
		req.Format = Format(args.Format)
	}

	width, err := dimension("width", args.Width)
	if err != nil {
		return nil, err
	}
	req.Options.Width = width

	height, err := dimension("height", args.Height)
	if err != nil {
		return nil, err
	}
	req.Options.Height = height

	if args.Scale != nil {
		scale := *args.Scale
		if math.IsNaN(scale) || scale <= 0 || scale > MaxScale {
			return nil, invalid("scale must be greater than 0 and at most %d, got %v", MaxScale, scale)
		}
		req.Options.Scale = &scale
	}

	if args.BgColor != nil {
		color := strings.TrimSpace(*args.BgColor)
		if color == "" {
			return nil, invalid("bgColor must not be empty")
		}
		if !cssColorPattern.MatchString(color) {
			return nil, invalid("invalid bgColor %q: expected a hex color, a color name, or rgb()/rgba()/hsl()/hsla()", color)
		}
		req.Options.BgColor = color
	}

	if args.Theme != nil {
		if !oneOf(*args.Theme, Themes) {
			return nil, invalid("invalid theme %q. Must be one of: %s", *args.Theme, strings.Join(Themes, ", "))
		}
		req.Options.Theme = *args.Theme
	}

	if args.Fit != nil {
		req.PDF.Fit = *args.Fit
	}
	if args.Paper != nil {
		if !oneOf(*args.Paper, Papers) {
			return nil, invalid("invalid paper %q. Must be one of: %s", *args.Paper, strings.Join(Papers, ", "))
		}
		req.PDF.Paper = *args.Paper
	}
	if args.Landscape != nil {
		req.PDF.Landscape = *args.Landscape
	}

	return req, nil
}

func dimension(name string, value *float64) (*int, error) {
	if value == nil {
		return nil, nil
	}
	v := *value
	if v != math.Trunc(v) || v < MinDimension || v > MaxDimension {
		return nil, invalid("%s must be an integer between %d and %d, got %v", name, MinDimension, MaxDimension, v)
	}
	n := int(v)
	return &n, nil
}

func oneOf(value string, valid []string) bool {
	for _, v := range valid {
		if value == v {
			return true
		}
	}
	return false
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}
