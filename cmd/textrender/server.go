// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/suti/textrender/font"
	"github.com/suti/textrender/render"
	"github.com/suti/textrender/render/svg"
	"github.com/suti/textrender/text"
)

type server struct {
	cache   *font.Cache
	updates *font.UpdateMap
	loader  *font.Loader
	client  *http.Client
	mux     *http.ServeMux
}

func newServer(cache *font.Cache, updates *font.UpdateMap, fontDir string) *server {
	s := &server{
		cache:   cache,
		updates: updates,
		loader:  &font.Loader{Dir: fontDir, Cache: cache, Updates: updates},
		client:  &http.Client{Timeout: 10 * time.Second},
		mux:     http.NewServeMux(),
	}
	post := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}
			h(w, r)
		}
	}
	s.mux.HandleFunc("/convertCommand", post(s.convertCommand))
	s.mux.HandleFunc("/convertSvg", post(s.convertSVG))
	s.mux.HandleFunc("/info", s.info)
	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// rendered is the outcome of typesetting one request.
type rendered struct {
	data     *text.TextData
	layout   *text.Result
	commands render.CommandList
}

// process parses and typesets a request: reload stale fonts, ensure every
// referenced glyph, lay out, lower and finalize.
func (s *server) process(body string) (*rendered, error) {
	data, err := text.ParseTextData(body)
	if err != nil {
		return nil, err
	}

	staleFonts := make(map[string]bool)
	missing := make(map[string][]rune)
	for _, content := range data.Paragraph.Contents {
		for _, block := range content.Blocks {
			if !s.updates.IsLatest(block.FontFamily) {
				staleFonts[block.FontFamily] = true
			}
			for _, r := range block.Text {
				if !s.cache.HasGlyph(block.FontFamily, r) {
					missing[block.FontFamily] = append(missing[block.FontFamily], r)
				}
			}
		}
	}
	for family := range staleFonts {
		if err := s.loader.LoadFont(family); err != nil {
			log.Printf("load font %s: %v", family, err)
		}
	}
	for family, runes := range missing {
		for _, r := range runes {
			s.cache.EnsureGlyph(family, r)
		}
	}

	layout := text.Layout(data, s.cache)
	table, commands := render.Lower(layout.Letters)
	return &rendered{
		data:     data,
		layout:   layout,
		commands: render.Finalize(table, commands),
	}, nil
}

func (s *server) convertCommand(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "解析字符串失败", http.StatusInternalServerError)
		return
	}
	result, err := s.process(string(body))
	if err != nil {
		http.Error(w, "解析文字数据失败", http.StatusInternalServerError)
		return
	}
	stream := render.Pack(result.layout.MinWidth, result.layout.Width, result.layout.Height,
		result.layout.BBoxes, result.commands)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stream); err != nil {
		log.Printf("convertCommand: write: %v", err)
		return
	}
	log.Printf("convertCommand: %v, glyph_cache_count: %d, font_cache_count: %d",
		time.Since(start), s.cache.GlyphCount(), s.cache.FaceCount())
}

func (s *server) convertSVG(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "解析字符串失败", http.StatusInternalServerError)
		return
	}
	result, err := s.process(string(body))
	if err != nil {
		http.Error(w, "解析文字数据失败", http.StatusInternalServerError)
		return
	}
	data := result.data
	art := data.Paragraph.ArtText

	var texture []byte
	if art != nil && art.Texture != "" {
		texture, err = s.fetchTexture(r.Context(), art.Texture)
		if err != nil {
			log.Printf("fetch texture %s: %v", art.Texture, err)
			http.Error(w, "下载艺术字纹理失败, "+art.Texture, http.StatusInternalServerError)
			return
		}
	}

	// The reference size for art-text layer widths is the leading block's
	// font size.
	refSize := float32(16)
	if len(data.Paragraph.Contents) > 0 && len(data.Paragraph.Contents[0].Blocks) > 0 {
		refSize = data.Paragraph.Contents[0].Blocks[0].FontSize
	}

	width, height := result.layout.Width, result.layout.Height
	if !data.Paragraph.WritingMode.Vertical() {
		if data.Width > width {
			width = data.Width
		}
	} else {
		if data.Height > height {
			height = data.Height
		}
	}

	var doc string
	if art != nil {
		doc = svg.RenderArtText(result.commands, width, height, refSize, art, texture)
	} else {
		doc = svg.RenderText(result.commands, width, height, 1)
	}

	elapsed := time.Since(start)
	log.Printf("convertSvg: %v, glyph_cache_count: %d, font_cache_count: %d",
		elapsed, s.cache.GlyphCount(), s.cache.FaceCount())
	if elapsed > 500*time.Millisecond {
		log.Printf("warning 超长的加载耗时: %v 请求: %s", elapsed, body)
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	io.WriteString(w, doc)
}

func (s *server) info(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "graph_cache_count: %d, font_cache_count: %d",
		s.cache.GlyphCount(), s.cache.FaceCount())
}

// fetchTexture downloads an art-text texture. Scheme-relative URLs get
// http, and https is downgraded to match the upstream asset hosts.
func (s *server) fetchTexture(ctx context.Context, url string) ([]byte, error) {
	if !strings.Contains(url, "http:") && !strings.Contains(url, "https:") {
		url = "http:" + url
	}
	url = strings.Replace(url, "https:", "http:", 1)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("texture fetch: status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
