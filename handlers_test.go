package main

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func uploadRequest(t *testing.T, target, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		part.Write([]byte(content))
	} else {
		mw.WriteField("note", "nothing selected")
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(cfg Config, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	newMux(cfg).ServeHTTP(rec, req)
	return rec
}

const scenarioA = "Keyword,Clicks\na,9\nb,10\nc,11\nd,abc\n"

func TestUploadPagePrompt(t *testing.T) {
	rec := serve(defaultConfig(), httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Upload a CSV file to count its keywords.") {
		t.Error("upload prompt missing")
	}
	if !strings.Contains(body, `accept=".csv,.xlsx"`) {
		t.Error("file control missing")
	}
}

func TestUnknownPath(t *testing.T) {
	rec := serve(defaultConfig(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCountHandlerSuccess(t *testing.T) {
	rec := serve(defaultConfig(), uploadRequest(t, "/count", "export.csv", scenarioA))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{
		`id="total-rows">4<`,
		`id="count-gte">2<`,
		`id="count-gt">1<`,
		"export.csv",
		"successfully",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("response missing %q", want)
		}
	}
	if strings.Contains(body, "Error processing file") {
		t.Error("unexpected error message")
	}
}

func TestCountHandlerFormatsLargeCounts(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Keyword,Clicks\n")
	for i := 0; i < 1500; i++ {
		sb.WriteString("k,1.000\n")
	}
	rec := serve(defaultConfig(), uploadRequest(t, "/count", "big.csv", sb.String()))
	if !strings.Contains(rec.Body.String(), `id="total-rows">1,500<`) {
		t.Errorf("expected humanized total, got %s", rec.Body.String())
	}
}

func TestCountHandlerNoFile(t *testing.T) {
	rec := serve(defaultConfig(), uploadRequest(t, "/count", "", ""))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Upload a CSV file to count its keywords.") {
		t.Error("expected upload prompt when no file is selected")
	}
}

func TestCountHandlerErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		wantText string
	}{
		{"wrong type", "notes.txt", "hello", "unsupported file type"},
		{"empty csv", "empty.csv", "", "empty file"},
		{"bad encoding", "bad.csv", "Keyword,Clicks\n\xff,1\n", "not valid UTF-8"},
		{"bad workbook", "broken.xlsx", "not a zip", "excel error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(defaultConfig(), uploadRequest(t, "/count", tt.filename, tt.content))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, "Error processing file") || !strings.Contains(body, tt.wantText) {
				t.Errorf("body missing error %q", tt.wantText)
			}
			if strings.Contains(body, `id="total-rows"`) {
				t.Error("metrics rendered alongside an error")
			}
		})
	}
}

func TestCountHandlerTooLarge(t *testing.T) {
	cfg := defaultConfig()
	cfg.MaxUploadBytes = 16
	rec := serve(cfg, uploadRequest(t, "/count", "export.csv", scenarioA))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "file too large") {
		t.Error("expected size error")
	}
}

func TestCountHandlerGetRedirects(t *testing.T) {
	rec := serve(defaultConfig(), httptest.NewRequest(http.MethodGet, "/count", nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
}

func TestAPICount(t *testing.T) {
	rec := serve(defaultConfig(), uploadRequest(t, "/api/count", "export.csv", scenarioA))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			TotalRows  int `json:"total_rows"`
			CountGTE10 int `json:"count_gte_10"`
			CountGT10  int `json:"count_gt_10"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Error("success = false")
	}
	if resp.Data.TotalRows != 4 || resp.Data.CountGTE10 != 2 || resp.Data.CountGT10 != 1 {
		t.Errorf("data = %+v", resp.Data)
	}
}

func TestAPICountErrors(t *testing.T) {
	rec := serve(defaultConfig(), uploadRequest(t, "/api/count", "notes.txt", "x"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	var resp APIResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Success || resp.Error == "" {
		t.Errorf("resp = %+v", resp)
	}

	rec = serve(defaultConfig(), httptest.NewRequest(http.MethodGet, "/api/count", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}

	rec = serve(defaultConfig(), uploadRequest(t, "/api/count", "", ""))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("no file status = %d, want 422", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	rec := serve(defaultConfig(), httptest.NewRequest(http.MethodGet, "/health", nil))
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v", body["status"])
	}
}
