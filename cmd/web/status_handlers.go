package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	mw "buylink.app/buylink-web/internal/middleware"
	"buylink.app/buylink-web/internal/nav"
)

// statusProbes are the services shown on the status board. The database has
// no endpoint of its own; the backend health check covers it.
var statusProbes = []struct {
	NameKey string
	Path    string
}{
	{"status.service.backend", "/api/health"},
	{"status.service.ai", "/api/ai/health"},
	{"status.service.db", "/api/health"},
}

type ServiceStatusView struct {
	NameKey   string
	Path      string
	Online    bool
	LatencyMS int64
}

type StatusPageView struct {
	Lang      string
	Services  []ServiceStatusView
	Online    int
	AllOnline bool
	CheckedAt time.Time
}

// StatusHandler renders the service status board. htmx polls it every 30
// seconds and swaps the fragment in place.
func StatusHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	view := buildStatusView(r.Context(), lang)
	if mw.IsHTMX(r.Context()) {
		renderTemplate(w, r, "frag_status_board", view)
		return
	}
	renderPage(w, r, "page_status", PageData{
		Title:   i18nOrDefault(lang, "status.title", "시스템 상태"),
		Lang:    lang,
		Path:    r.URL.Path,
		Nav:     nav.Build(r.URL.Path),
		Content: view,
	})
}

func buildStatusView(ctx context.Context, lang string) StatusPageView {
	view := StatusPageView{
		Lang:      lang,
		Services:  make([]ServiceStatusView, len(statusProbes)),
		CheckedAt: time.Now(),
	}
	var wg sync.WaitGroup
	for i, probe := range statusProbes {
		view.Services[i] = ServiceStatusView{NameKey: probe.NameKey, Path: probe.Path}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			elapsed, err := backend.Ping(ctx, path)
			if err != nil {
				return
			}
			view.Services[i].Online = true
			view.Services[i].LatencyMS = elapsed.Milliseconds()
		}(i, probe.Path)
	}
	wg.Wait()
	for _, s := range view.Services {
		if s.Online {
			view.Online++
		}
	}
	view.AllOnline = view.Online == len(view.Services)
	return view
}
