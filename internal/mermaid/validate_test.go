package mermaid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func TestValidate_Defaults(t *testing.T) {
	req, err := Validate(Arguments{Action: "get_url", Diagram: "graph TD; A-->B"})
	require.NoError(t, err)

	assert.Equal(t, ActionGetURL, req.Action)
	assert.Equal(t, FormatPNG, req.Format)
	assert.Nil(t, req.Options.Width)
	assert.Nil(t, req.Options.Scale)
	assert.Empty(t, req.OutputPath)
	assert.Equal(t, PDFOptions{}, req.PDF)
}

func TestValidate_FullRequest(t *testing.T) {
	req, err := Validate(Arguments{
		Action:     "save_file",
		Diagram:    "graph TD; A-->B",
		OutputPath: "out/diagram.pdf",
		Format:     "pdf",
		Width:      numPtr(800),
		Height:     numPtr(600),
		Scale:      numPtr(1.5),
		BgColor:    strPtr("#FFF"),
		Theme:      strPtr("dark"),
		Fit:        boolPtr(true),
		Paper:      strPtr("a4"),
		Landscape:  boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, ActionSaveFile, req.Action)
	assert.Equal(t, FormatPDF, req.Format)
	assert.Equal(t, "out/diagram.pdf", req.OutputPath)
	require.NotNil(t, req.Options.Width)
	assert.Equal(t, 800, *req.Options.Width)
	assert.Equal(t, 600, *req.Options.Height)
	assert.Equal(t, 1.5, *req.Options.Scale)
	assert.Equal(t, "#FFF", req.Options.BgColor)
	assert.Equal(t, "dark", req.Options.Theme)
	assert.Equal(t, PDFOptions{Fit: true, Paper: "a4", Landscape: true}, req.PDF)
}

func TestValidate_Rejects(t *testing.T) {
	base := func() Arguments {
		return Arguments{Action: "get_url", Diagram: "graph TD; A-->B"}
	}
	tests := []struct {
		name   string
		mutate func(a *Arguments)
		msg    string
	}{
		{"empty diagram", func(a *Arguments) { a.Diagram = "" }, "diagram"},
		{"blank diagram", func(a *Arguments) { a.Diagram = " \n\t " }, "diagram"},
		{"missing action", func(a *Arguments) { a.Action = "" }, "action"},
		{"unknown action", func(a *Arguments) { a.Action = "render" }, "action"},
		{"save without path", func(a *Arguments) { a.Action = "save_file" }, "outputPath"},
		{"save with blank path", func(a *Arguments) { a.Action = "save_file"; a.OutputPath = "  " }, "outputPath"},
		{"bad format", func(a *Arguments) { a.Format = "gif" }, "format"},
		{"width zero", func(a *Arguments) { a.Width = numPtr(0) }, "width"},
		{"width too large", func(a *Arguments) { a.Width = numPtr(10001) }, "width"},
		{"width fractional", func(a *Arguments) { a.Width = numPtr(3.5) }, "width"},
		{"height negative", func(a *Arguments) { a.Height = numPtr(-1) }, "height"},
		{"scale zero", func(a *Arguments) { a.Scale = numPtr(0) }, "scale"},
		{"scale too large", func(a *Arguments) { a.Scale = numPtr(10.01) }, "scale"},
		{"empty bgColor", func(a *Arguments) { a.BgColor = strPtr("") }, "bgColor"},
		{"bad bgColor", func(a *Arguments) { a.BgColor = strPtr("#12") }, "bgColor"},
		{"bgColor injection", func(a *Arguments) { a.BgColor = strPtr("red&theme=dark") }, "bgColor"},
		{"bad theme", func(a *Arguments) { a.Theme = strPtr("solarized") }, "theme"},
		{"bad paper", func(a *Arguments) { a.Paper = strPtr("letter") }, "paper"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := base()
			tt.mutate(&args)
			req, err := Validate(args)
			require.Error(t, err)
			assert.Nil(t, req)
			assert.ErrorIs(t, err, ErrInvalidParams)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, CodeInvalidParams, Code(err))
		})
	}
}

func TestValidate_DimensionBounds(t *testing.T) {
	for _, w := range []float64{1, 10000} {
		req, err := Validate(Arguments{Action: "get_url", Diagram: "graph TD", Width: numPtr(w), Height: numPtr(w)})
		require.NoError(t, err)
		assert.Equal(t, int(w), *req.Options.Width)
		assert.Equal(t, int(w), *req.Options.Height)
	}
}

func TestValidate_ScaleUpperBoundInclusive(t *testing.T) {
	req, err := Validate(Arguments{Action: "get_url", Diagram: "graph TD", Scale: numPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, 10.0, *req.Options.Scale)
}

func TestValidate_BgColors(t *testing.T) {
	valid := []string{"white", "transparent", "#fff", "#FFFFFF", "#11223344", "rgb(255, 0, 0)", "rgba(0,0,0,0.5)", "hsl(120, 100%, 50%)", "hsla(120,100%,50%,0.3)"}
	for _, c := range valid {
		_, err := Validate(Arguments{Action: "get_url", Diagram: "graph TD", BgColor: strPtr(c)})
		assert.NoError(t, err, c)
	}
	invalidColors := []string{"#ab", "#123456789", "rgb(1,2", "cmyk(0,0,0,0)", "red blue", "#ggg"}
	for _, c := range invalidColors {
		_, err := Validate(Arguments{Action: "get_url", Diagram: "graph TD", BgColor: strPtr(c)})
		assert.ErrorIs(t, err, ErrInvalidParams, c)
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	_, err := Validate(Arguments{Action: "bogus", Diagram: "", Width: numPtr(0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diagram")

	_, err = Validate(Arguments{Action: "get_url", Diagram: "graph TD", Format: "gif", Width: numPtr(0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

func TestValidate_OutputPathIgnoredForGetURL(t *testing.T) {
	req, err := Validate(Arguments{Action: "get_url", Diagram: "graph TD", OutputPath: "x.png"})
	require.NoError(t, err)
	assert.Empty(t, req.OutputPath)
}

func TestCode_Unclassified(t *testing.T) {
	assert.Equal(t, CodeInternalError, Code(assert.AnError))
}
