package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/chunker"
	"github.com/kailas-cloud/ragchat/internal/domain"
	"github.com/kailas-cloud/ragchat/internal/repository/docstore"
	chatuc "github.com/kailas-cloud/ragchat/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/ragchat/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/ragchat/internal/usecase/ingest"
	retrievaluc "github.com/kailas-cloud/ragchat/internal/usecase/retrieval"
)

// fakeEmbedder returns the same unit vector for every text, so any
// stored chunk is a perfect match for any query.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: []float32{1, 0}, TotalTokens: 3}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := zap.NewNop()
	store, err := docstore.New(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("docstore.New: %v", err)
	}

	ingestSvc := ingestuc.New(store, fakeEmbedder{}, chunker.New(1000, 200),
		ingestuc.Options{MaxFileSizeBytes: 1 << 20, MaxChunksPerDocument: 100}, logger)
	retrievalSvc := retrievaluc.New(store)
	chatSvc := chatuc.New(fakeEmbedder{}, retrievalSvc, chatuc.StaticResponder{},
		chatuc.Limits{DefaultTopK: 3, MaxTopK: 10}, logger)
	healthSvc := healthuc.New(store, nil)

	server := NewServer(chatSvc, ingestSvc, healthSvc, 1<<20, logger)

	r := chi.NewRouter()
	server.Routes(r)
	return r
}

func multipartUpload(t *testing.T, filename, content, category string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if category != "" {
		if err := mw.WriteField("category", category); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func doJSON(t *testing.T, router http.Handler, req *http.Request, wantStatus int, out any) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, wantStatus, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response: %v; body: %s", err, rec.Body.String())
		}
	}
}

func TestUploadAndList(t *testing.T) {
	router := newTestRouter(t)

	var up uploadResponse
	doJSON(t, router, multipartUpload(t, "notes.txt", strings.Repeat("a", 2500), "guides"),
		http.StatusCreated, &up)

	if !up.Success {
		t.Error("success = false")
	}
	if up.DocumentID == "" {
		t.Error("no document id")
	}
	if up.Chunks != 3 {
		t.Errorf("chunks = %d, want 3", up.Chunks)
	}
	if up.FileType != "txt" || up.Language != "en" || up.Category != "guides" {
		t.Errorf("metadata: type=%q lang=%q category=%q", up.FileType, up.Language, up.Category)
	}

	var list documentListResponse
	doJSON(t, router, httptest.NewRequest(http.MethodGet, "/v1/documents", nil), http.StatusOK, &list)
	if list.Total != 1 || len(list.Documents) != 1 {
		t.Fatalf("list = %+v", list)
	}
	if list.Documents[0].ID != up.DocumentID {
		t.Errorf("listed id %q, uploaded %q", list.Documents[0].ID, up.DocumentID)
	}
}

func TestUpload_UnsupportedFileType(t *testing.T) {
	router := newTestRouter(t)

	var errResp errorResponse
	doJSON(t, router, multipartUpload(t, "slides.pptx", "content", ""),
		http.StatusBadRequest, &errResp)
	if errResp.Code != codeUnsupportedFileType {
		t.Errorf("code = %q", errResp.Code)
	}
}

func TestUpload_EmptyDocument(t *testing.T) {
	router := newTestRouter(t)

	var errResp errorResponse
	doJSON(t, router, multipartUpload(t, "empty.txt", "   \n ", ""),
		http.StatusUnprocessableEntity, &errResp)
	if errResp.Code != codeEmptyDocument {
		t.Errorf("code = %q", errResp.Code)
	}
}

func TestUpload_MissingFileField(t *testing.T) {
	router := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("category", "misc"); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var errResp errorResponse
	doJSON(t, router, req, http.StatusBadRequest, &errResp)
	if errResp.Code != codeBadRequest {
		t.Errorf("code = %q", errResp.Code)
	}
}

func TestChat_WithUploadedContext(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, multipartUpload(t, "facts.txt",
		"The warehouse opens at nine in the morning and closes at six.", ""),
		http.StatusCreated, nil)

	body := strings.NewReader(`{"message": "When does the warehouse open?"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/chat", body)
	req.Header.Set("Content-Type", "application/json")

	var resp chatResponse
	doJSON(t, router, req, http.StatusOK, &resp)

	if !resp.ContextUsed {
		t.Error("context_used = false")
	}
	if resp.Language != "en" {
		t.Errorf("language = %q", resp.Language)
	}
	if len(resp.Sources) != 1 {
		t.Fatalf("sources = %d, want 1", len(resp.Sources))
	}
	if resp.Sources[0].Filename != "facts.txt" {
		t.Errorf("source filename = %q", resp.Sources[0].Filename)
	}
	if !strings.Contains(resp.Response, "warehouse opens at nine") {
		t.Errorf("answer does not quote context: %q", resp.Response)
	}
	if resp.Confidence <= 0 {
		t.Errorf("confidence = %v", resp.Confidence)
	}
}

func TestChat_EmptyCorpus(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/chat",
		strings.NewReader(`{"message": "anything indexed?"}`))
	req.Header.Set("Content-Type", "application/json")

	var resp chatResponse
	doJSON(t, router, req, http.StatusOK, &resp)
	if resp.ContextUsed {
		t.Error("context_used = true on empty corpus")
	}
	if resp.Response == "" {
		t.Error("no fallback answer")
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(`{"message": "  "}`))
	req.Header.Set("Content-Type", "application/json")

	var errResp errorResponse
	doJSON(t, router, req, http.StatusBadRequest, &errResp)
	if errResp.Code != codeValidationFailed {
		t.Errorf("code = %q", errResp.Code)
	}
}

func TestChat_MalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(`{broken`))
	req.Header.Set("Content-Type", "application/json")

	var errResp errorResponse
	doJSON(t, router, req, http.StatusBadRequest, &errResp)
	if errResp.Code != codeBadRequest {
		t.Errorf("code = %q", errResp.Code)
	}
}

func TestDeleteDocument(t *testing.T) {
	router := newTestRouter(t)

	var up uploadResponse
	doJSON(t, router, multipartUpload(t, "notes.txt", "some stored text", ""),
		http.StatusCreated, &up)

	var del deleteResponse
	doJSON(t, router, httptest.NewRequest(http.MethodDelete, "/v1/documents/"+up.DocumentID, nil),
		http.StatusOK, &del)
	if !del.Success || del.DocumentID != up.DocumentID {
		t.Errorf("delete = %+v", del)
	}

	var list documentListResponse
	doJSON(t, router, httptest.NewRequest(http.MethodGet, "/v1/documents", nil), http.StatusOK, &list)
	if list.Total != 0 {
		t.Errorf("document still listed after delete: %+v", list)
	}

	// Deleting an unknown id is still a success.
	doJSON(t, router, httptest.NewRequest(http.MethodDelete, "/v1/documents/nonexistent", nil),
		http.StatusOK, &del)
	if !del.Success {
		t.Error("delete of unknown id failed")
	}
}

func TestStats(t *testing.T) {
	router := newTestRouter(t)

	doJSON(t, router, multipartUpload(t, "a.txt", "first document text", "guides"),
		http.StatusCreated, nil)
	doJSON(t, router, multipartUpload(t, "b.md", "# Title\n\nsecond document text", ""),
		http.StatusCreated, nil)

	var st statsResponse
	doJSON(t, router, httptest.NewRequest(http.MethodGet, "/v1/documents/stats", nil),
		http.StatusOK, &st)

	if st.TotalDocuments != 2 {
		t.Errorf("total_documents = %d", st.TotalDocuments)
	}
	if st.TotalChunks < 2 {
		t.Errorf("total_chunks = %d", st.TotalChunks)
	}
	if st.FileTypes["txt"] != 1 || st.FileTypes["md"] != 1 {
		t.Errorf("file_types = %v", st.FileTypes)
	}
	if st.Categories["guides"] != 1 || st.Categories["general"] != 1 {
		t.Errorf("categories = %v", st.Categories)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	var resp healthResponse
	doJSON(t, router, httptest.NewRequest(http.MethodGet, "/healthz", nil), http.StatusOK, &resp)

	if resp.Status != "ok" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Checks["storage"] != healthuc.CheckOK {
		t.Errorf("storage check = %q", resp.Checks["storage"])
	}
	if len(resp.SupportedLanguages) != 3 {
		t.Errorf("supported_languages = %v", resp.SupportedLanguages)
	}
}
