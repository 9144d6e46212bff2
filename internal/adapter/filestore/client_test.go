package filestore

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/scandent/orline/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestUploadSendsObjectAndReturnsURL(t *testing.T) {
	var gotMethod, gotPath, gotCT, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotCT = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"url":"https://cdn.example/o1/scan.png"}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	url, err := client.Upload(context.Background(), "o1/123_scan.png", []byte("img-bytes"), "image/png")
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if url != "https://cdn.example/o1/scan.png" {
		t.Fatalf("unexpected url %q", url)
	}
	if gotMethod != http.MethodPut {
		t.Fatalf("expected PUT, got %s", gotMethod)
	}
	if gotPath != "/objects/o1/123_scan.png" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotCT != "image/png" || gotBody != "img-bytes" {
		t.Fatalf("request payload mismatch: ct=%q body=%q", gotCT, gotBody)
	}
}

func TestUploadRejectsEmptyURLInResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	if _, err := client.Upload(context.Background(), "o1/x.png", nil, "image/png"); err == nil {
		t.Fatal("expected error when service returns no url")
	}
}

func TestUploadSurfacesServiceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusInsufficientStorage)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	_, err = client.Upload(context.Background(), "o1/x.png", []byte("a"), "image/png")
	if err == nil || !strings.Contains(err.Error(), "file store error") {
		t.Fatalf("expected file store error, got %v", err)
	}
}

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{FileStoreAddress: "http://example.com"}
	client, err := newClient(clientParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}
}
