// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/suti/textrender/font"
)

func newTestServer(t *testing.T) *server {
	t.Helper()
	cache := font.NewCache()
	if err := cache.Load(font.DefaultFamily, goregular.TTF); err != nil {
		t.Fatalf("load default font: %v", err)
	}
	return newServer(cache, font.NewUpdateMap(), t.TempDir())
}

const simpleBody = `{"width":200,"height":50,"paragraph":{"textAlign":"left",
	"contents":[{"lineHeight":1.2,"blocks":[{"text":"AB","fontSize":20}]}]}}`

func TestConvertSVG(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/convertSvg", strings.NewReader(simpleBody)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<svg") {
		t.Errorf("not an svg document: %.80s", body)
	}
	if strings.Count(body, "<path") < 2 {
		t.Errorf("expected a path per letter:\n%.200s", body)
	}
}

func TestConvertCommand(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/convertCommand", strings.NewReader(simpleBody)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var stream []float32
	if err := json.Unmarshal(rec.Body.Bytes(), &stream); err != nil {
		t.Fatalf("decode stream: %v", err)
	}
	if len(stream) < 4 || stream[0] != -5 {
		t.Fatalf("stream header wrong: %v", stream[:4])
	}
	// Width is the declared canvas; height collapses to the single line's
	// extent: lineHeight·fontSize = 24.
	if stream[2] != 200 || stream[3] < 23.9 || stream[3] > 24.1 {
		t.Errorf("canvas in header: %v x %v", stream[2], stream[3])
	}
	// Two letters, two bounding boxes.
	if stream[4] != 2 {
		t.Errorf("bbox count: have %v, want 2", stream[4])
	}
}

func TestConvertRejectsBrokenBody(t *testing.T) {
	srv := newTestServer(t)
	for _, body := range []string{"not json", `{"width":1}`} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/convertSvg", strings.NewReader(body)))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("%q: status %d, want 500", body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "解析") {
			t.Errorf("%q: diagnostic missing: %s", body, rec.Body.String())
		}
	}
}

func TestInfo(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/info", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "font_cache_count: 1") {
		t.Errorf("info body: %s", rec.Body.String())
	}
}

func TestGlyphsAreCachedAcrossRequests(t *testing.T) {
	srv := newTestServer(t)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/convertSvg", strings.NewReader(simpleBody)))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}
	if got := srv.cache.GlyphCount(); got != 2 {
		t.Errorf("glyph cache count: have %d, want 2 (A and B once each)", got)
	}
}

func TestTextureFetchFailureIs500(t *testing.T) {
	srv := newTestServer(t)
	// advancedData with a texture pointing at a local port nothing listens on.
	body := `{"width":100,"height":50,"paragraph":{"contents":[
		{"blocks":[{"text":"A","fontSize":20}]}],
		"advancedData":{"texture":"//127.0.0.1:1/none.png"}}}`
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/convertSvg", strings.NewReader(body)))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "下载艺术字纹理失败") {
		t.Errorf("diagnostic missing: %s", rec.Body.String())
	}
}
