package mermaid

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// envelope is the document the live editor expects behind a pako: token.
type envelope struct {
	Code string `json:"code"`
}

// Encode turns diagram source into a pako token: the JSON envelope
// {"code": diagram} deflated with zlib framing at best compression, then
// base64url encoded without padding.
func Encode(diagram string) (string, error) {
	var doc bytes.Buffer
	enc := json.NewEncoder(&doc)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(envelope{Code: diagram}); err != nil {
		return "", err
	}
	payload := bytes.TrimSuffix(doc.Bytes(), []byte("\n"))

	var buf bytes.Buffer
	writer, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := writer.Write(payload); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode. Tokens produced by older schemes (plain base64url
// text, or deflated text without the JSON envelope) are rejected.
func Decode(token string) (string, error) {
	token = strings.TrimPrefix(token, "pako:")
	token = strings.TrimRight(token, "=")

	compressed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("invalid token encoding: %w", err)
	}

	reader, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", fmt.Errorf("invalid token compression: %w", err)
	}
	defer reader.Close()

	payload, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to inflate token: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(payload, &doc); err != nil {
		return "", fmt.Errorf("invalid token payload: %w", err)
	}
	raw, ok := doc["code"]
	if !ok {
		return "", fmt.Errorf("invalid token payload: missing code field")
	}

	var code string
	if err := json.Unmarshal(raw, &code); err != nil {
		return "", fmt.Errorf("invalid token payload: %w", err)
	}
	return code, nil
}
