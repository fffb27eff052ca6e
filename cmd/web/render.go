package main

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"buylink.app/buylink-web/internal/format"
	mw "buylink.app/buylink-web/internal/middleware"
	"buylink.app/buylink-web/internal/nav"
)

var tmplCache *template.Template

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now":       time.Now,
		"krw":       format.KRW,
		"yen":       format.Yen,
		"weight":    format.Weight,
		"volume":    format.Volume,
		"orderDate": format.OrderDate,
		"fmtDate":   format.FmtDate,
		"t": func(lang, key string) string {
			if i18nBundle == nil {
				return key
			}
			return i18nBundle.T(lang, key)
		},
		// used only for backend-sourced HTML already passed through the
		// sanitizer at ingestion
		"sanitized": func(s string) template.HTML { return template.HTML(s) },
	}
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func templates(w http.ResponseWriter) *template.Template {
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return nil
		}
		return tc
	}
	if tmplCache == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return nil
	}
	return tmplCache
}

// PageData is the common view model for full page renders.
type PageData struct {
	Title     string
	Lang      string
	Path      string
	Nav       []nav.RenderedItem
	CSRFToken string
	Content   any
}

// renderPage executes the base layout with the named page template as body.
func renderPage(w http.ResponseWriter, r *http.Request, page string, vm PageData) {
	t := templates(w)
	if t == nil {
		return
	}
	vm.CSRFToken = mw.GetSession(r).CSRFToken
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, page, vm); err != nil {
		appLogger.Error("template exec", zap.String("template", page), zap.Error(err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
	}
}

// renderTemplate executes a named fragment template, used for htmx swaps.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	t := templates(w)
	if t == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		appLogger.Error("template exec", zap.String("template", name), zap.Error(err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
	}
}

// i18nOrDefault resolves a message key, falling back to def when the catalog
// returns the key unchanged.
func i18nOrDefault(lang, key, def string) string {
	if i18nBundle == nil {
		return def
	}
	if v := i18nBundle.T(lang, key); v != key {
		return v
	}
	return def
}

// absoluteURL roots a path at the configured site origin.
func absoluteURL(path string) string {
	base := strings.TrimRight(siteBaseURL, "/")
	if base == "" {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
