package ragchat

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
)

// UploadDocument uploads one file for ingestion. Supported extensions:
// .pdf, .md, .markdown, .txt, .json. Category is optional; the server
// defaults it to "general".
func (c *Client) UploadDocument(
	ctx context.Context, filename string, content []byte, category string,
) (UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("ragchat: build upload: %w", err)
	}
	if _, err := fw.Write(content); err != nil {
		return UploadResult{}, fmt.Errorf("ragchat: build upload: %w", err)
	}
	if category != "" {
		if err := mw.WriteField("category", category); err != nil {
			return UploadResult{}, fmt.Errorf("ragchat: build upload: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("ragchat: build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/documents", &body)
	if err != nil {
		return UploadResult{}, fmt.Errorf("ragchat: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

// ListDocuments returns the metadata of every stored document, oldest
// first.
func (c *Client) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	var resp struct {
		Documents []DocumentInfo `json:"documents"`
		Total     int            `json:"total"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/documents", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// Stats summarizes the stored corpus.
func (c *Client) Stats(ctx context.Context) (CorpusStats, error) {
	var st CorpusStats
	if err := c.doJSON(ctx, http.MethodGet, "/v1/documents/stats", nil, &st); err != nil {
		return CorpusStats{}, err
	}
	return st, nil
}

// DeleteDocument removes a document and its chunks. Deleting an unknown
// id succeeds.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) error {
	path := "/v1/documents/" + url.PathEscape(documentID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
