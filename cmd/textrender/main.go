// SPDX-License-Identifier: Unlicense OR MIT

// Command textrender serves the typesetting service: POST a text document
// to /convertCommand for the packed draw-command stream, or to /convertSvg
// for a rendered SVG. Font binaries live in -fontdir named exactly by
// family, next to a data.json mapping families to versions; the file is
// polled and changed fonts are reloaded lazily per request.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/suti/textrender/font"
)

func main() {
	addr := flag.String("addr", ":8210", "listen address")
	fontDir := flag.String("fontdir", "/opt/textrender.font.cache/", "font binary directory")
	poll := flag.Duration("poll", time.Second, "versions file poll interval")
	flag.Parse()

	cache := font.NewCache()
	if err := cache.Load(font.DefaultFamily, goregular.TTF); err != nil {
		log.Fatalf("load embedded default font: %v", err)
	}
	updates := font.NewUpdateMap()
	versionsPath := *fontDir + "data.json"
	if source, err := font.ReadVersions(versionsPath); err != nil {
		log.Printf("initial versions load: %v", err)
	} else {
		updates.SetSource(source)
	}

	srv := newServer(cache, updates, *fontDir)

	go preloadFonts(srv)

	watcher := &font.Watcher{Path: versionsPath, Interval: *poll, Updates: updates}
	go watcher.Run(context.Background())

	log.Printf("text service on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, srv))
}

// preloadFonts loads every family the versions file lists, retrying
// failures in ten-second rounds until none remain.
func preloadFonts(srv *server) {
	start := time.Now()
	names := srv.updates.Families()
	for len(names) > 0 {
		var failed []string
		for _, name := range names {
			if err := srv.loader.LoadFont(name); err != nil {
				log.Printf("preload %s: %v", name, err)
				failed = append(failed, name)
			}
		}
		if len(failed) == 0 {
			break
		}
		names = failed
		time.Sleep(10 * time.Second)
	}
	log.Printf("all fonts loaded. %v", time.Since(start))
}
