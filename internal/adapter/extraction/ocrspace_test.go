package extraction_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"smartnotes/internal/adapter/extraction"
	"smartnotes/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOCRSpaceExtractSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-key", r.PostFormValue("apikey"))
		assert.Equal(t, "2", r.PostFormValue("OCREngine"))
		assert.Equal(t, "eng", r.PostFormValue("language"))
		assert.True(t, strings.HasPrefix(r.PostFormValue("base64Image"), "data:image/png;base64,"))

		w.Write([]byte(`{"ParsedResults": [{"ParsedText": "scanned text"}], "IsErroredOnProcessing": false}`))
	}))
	defer server.Close()

	adapter := extraction.NewOCRSpaceAdapter(server.URL, "test-key", 2, "eng", time.Second)

	result, err := adapter.Extract(context.Background(), domain.ExtractionRequest{
		Payload:   []byte("image bytes"),
		MediaType: "image/png",
	})

	require.NoError(t, err)
	assert.Equal(t, "scanned text", result.Text)
	assert.Equal(t, domain.ProviderOCRSpace, result.SourceProvider)
}

func TestOCRSpaceExtractFailsWithoutAPIKey(t *testing.T) {
	adapter := extraction.NewOCRSpaceAdapter("http://unused", "", 2, "eng", time.Second)

	_, err := adapter.Extract(context.Background(), domain.ExtractionRequest{Payload: []byte("x")})

	assert.ErrorContains(t, err, "not configured")
}

func TestOCRSpaceExtractProcessingError(t *testing.T) {
	t.Run("error message as array", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ParsedResults": [], "IsErroredOnProcessing": true, "ErrorMessage": ["file is corrupt", "E216"]}`))
		}))
		defer server.Close()

		adapter := extraction.NewOCRSpaceAdapter(server.URL, "test-key", 2, "eng", time.Second)
		_, err := adapter.Extract(context.Background(), domain.ExtractionRequest{Payload: []byte("x")})
		assert.ErrorContains(t, err, "file is corrupt")
	})

	t.Run("error message as string", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ParsedResults": [], "IsErroredOnProcessing": true, "ErrorMessage": "timed out"}`))
		}))
		defer server.Close()

		adapter := extraction.NewOCRSpaceAdapter(server.URL, "test-key", 2, "eng", time.Second)
		_, err := adapter.Extract(context.Background(), domain.ExtractionRequest{Payload: []byte("x")})
		assert.ErrorContains(t, err, "timed out")
	})

	t.Run("error flag without message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ParsedResults": [], "IsErroredOnProcessing": true}`))
		}))
		defer server.Close()

		adapter := extraction.NewOCRSpaceAdapter(server.URL, "test-key", 2, "eng", time.Second)
		_, err := adapter.Extract(context.Background(), domain.ExtractionRequest{Payload: []byte("x")})
		assert.ErrorContains(t, err, "OCR.Space processing error")
	})
}

func TestOCRSpaceExtractEmptyResultIsFailure(t *testing.T) {
	t.Run("no parsed results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ParsedResults": [], "IsErroredOnProcessing": false}`))
		}))
		defer server.Close()

		adapter := extraction.NewOCRSpaceAdapter(server.URL, "test-key", 2, "eng", time.Second)
		_, err := adapter.Extract(context.Background(), domain.ExtractionRequest{Payload: []byte("x")})
		assert.ErrorContains(t, err, "no text found")
	})

	t.Run("whitespace-only parsed text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ParsedResults": [{"ParsedText": "  \n "}], "IsErroredOnProcessing": false}`))
		}))
		defer server.Close()

		adapter := extraction.NewOCRSpaceAdapter(server.URL, "test-key", 2, "eng", time.Second)
		_, err := adapter.Extract(context.Background(), domain.ExtractionRequest{Payload: []byte("x")})
		assert.ErrorContains(t, err, "no text found")
	})
}

func TestOCRSpaceExtractHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter := extraction.NewOCRSpaceAdapter(server.URL, "test-key", 2, "eng", time.Second)

	_, err := adapter.Extract(context.Background(), domain.ExtractionRequest{Payload: []byte("x")})

	assert.ErrorContains(t, err, "503")
}
