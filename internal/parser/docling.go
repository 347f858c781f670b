package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// Docling delegates parsing to a docling-serve instance.
type Docling struct {
	baseURL string
	client  *http.Client
}

var _ Parser = (*Docling)(nil)

type doclingResponse struct {
	Document struct {
		MdContent   string `json:"md_content"`
		TextContent string `json:"text_content"`
	} `json:"document"`
	Status string `json:"status"`
	Errors []struct {
		ErrorMessage string `json:"error_message"`
	} `json:"errors"`
}

// NewDocling returns a Factory for the converter at baseURL. Loading fails when the
// service health check does not answer 200.
func NewDocling(baseURL string, client *http.Client) Factory {
	if client == nil {
		client = http.DefaultClient
	}
	return func(ctx context.Context) (Parser, error) {
		d := &Docling{baseURL: strings.TrimRight(baseURL, "/"), client: client}
		if err := d.ping(ctx); err != nil {
			return nil, err
		}
		return d, nil
	}
}

func (d *Docling) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("docling health: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("docling health: status %d", resp.StatusCode)
	}
	return nil
}

// Parse uploads buf to /v1/convert/file and returns the plain-text rendition, falling back
// to the markdown rendition.
func (d *Docling) Parse(ctx context.Context, buf []byte, opts Options) (Document, error) {
	if len(buf) == 0 {
		return nil, ErrEmptyInput
	}

	name := filepath.Base(opts.FileName)
	if name == "." || name == "/" || name == "" {
		name = "document"
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("files", name)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(buf); err != nil {
		return nil, err
	}
	for _, f := range []string{"text", "md"} {
		if err := w.WriteField("to_formats", f); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/v1/convert/file", &body)
	if err != nil {
		return nil, fmt.Errorf("build convert request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("docling convert: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read convert response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("docling convert: status %d", resp.StatusCode)
	}

	var dr doclingResponse
	if err := json.Unmarshal(raw, &dr); err != nil {
		return nil, fmt.Errorf("decode convert response: %w", err)
	}
	if dr.Status == "failure" {
		msg := "conversion failed"
		if len(dr.Errors) > 0 && dr.Errors[0].ErrorMessage != "" {
			msg = dr.Errors[0].ErrorMessage
		}
		return nil, fmt.Errorf("docling convert: %s", msg)
	}

	text := dr.Document.TextContent
	if strings.TrimSpace(text) == "" {
		text = dr.Document.MdContent
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if delim := opts.delimiter(); delim != "\n" {
		text = strings.ReplaceAll(text, "\n", delim)
	}
	return textDocument{text: text}, nil
}
