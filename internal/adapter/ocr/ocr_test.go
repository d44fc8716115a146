package ocr

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cert-study/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRecognizer_Recognize(t *testing.T) {
	var gotLang string
	var gotImage []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ocr/image", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		gotLang = r.FormValue("lang")
		f, _, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		gotImage, _ = io.ReadAll(f)
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "1. 문제\nA. 보기"})
	}))
	defer server.Close()

	rec := NewHTTPRecognizer(server.URL+"/", "kor+eng", time.Second)
	text, err := rec.Recognize(context.Background(), []byte("png-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "1. 문제\nA. 보기", text)
	assert.Equal(t, "kor+eng", gotLang)
	assert.Equal(t, []byte("png-bytes"), gotImage)
}

func TestHTTPRecognizer_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine crashed", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewHTTPRecognizer(server.URL, "eng", time.Second).Recognize(context.Background(), []byte("x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPRecognizer_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	assert.NoError(t, NewHTTPRecognizer(server.URL, "", time.Second).HealthCheck(context.Background()))
}

func TestTesseractRecognizer(t *testing.T) {
	rec := NewTesseractRecognizer("", "", 0)
	assert.Equal(t, []string{"stdin", "stdout", "-l", "kor+eng"}, rec.args())

	assert.Equal(t, []string{"stdin", "stdout", "-l", "eng", "--dpi", "300"},
		NewTesseractRecognizer("tesseract", "eng", 300).args())

	_, err := rec.Recognize(context.Background(), nil)
	assert.Error(t, err)

	missing := NewTesseractRecognizer("/nonexistent/tesseract-binary", "eng", 200)
	_, err = missing.Recognize(context.Background(), []byte("png"))
	assert.Error(t, err)
}

func TestNewRecognizer(t *testing.T) {
	rec, err := NewRecognizer(config.OCRConfig{Engine: "tesseract", Language: "eng", DPI: 200})
	require.NoError(t, err)
	require.IsType(t, &TesseractRecognizer{}, rec)
	assert.Contains(t, rec.(*TesseractRecognizer).args(), "200")

	rec, err = NewRecognizer(config.OCRConfig{Engine: "http", ServerURL: "http://ocr"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPRecognizer{}, rec)

	rec, err = NewRecognizer(config.OCRConfig{Engine: "none"})
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, err = NewRecognizer(config.OCRConfig{Engine: "paddle"})
	assert.Error(t, err)
}
