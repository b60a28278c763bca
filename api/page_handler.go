package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rpupo63/diaver-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// pages maps pretty URLs to their HTML file under the frontend directory.
var pages = map[string]string{
	"/":          "index.html",
	"/contacts":  "pages/contacts.html",
	"/products":  "pages/products.html",
	"/solutions": "pages/solutions.html",
	"/company":   "pages/company.html",
	"/admin":     "pages/admin.html",
}

type pageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	frontendDir string
}

func newPageHandler(frontendDir string) pageHandler {
	logger := log.With().Str("handlerName", "pageHandler").Logger()

	return pageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		frontendDir: frontendDir,
	}
}

func (h pageHandler) page(file string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serveFileOrIndex(w, r, filepath.Join(h.frontendDir, filepath.FromSlash(file)))
	}
}

// fallback serves static assets, answers unknown API paths with JSON and
// sends every other path to index.html.
func (h pageHandler) fallback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isAPIPath(r.URL.Path) {
			h.responder.WriteError(w, errs.NewNotFoundError("API endpoint not found: "+r.URL.Path))
			return
		}

		clean := path.Clean("/" + r.URL.Path)
		h.serveFileOrIndex(w, r, filepath.Join(h.frontendDir, filepath.FromSlash(clean)))
	}
}

func (h pageHandler) serveFileOrIndex(w http.ResponseWriter, r *http.Request, file string) {
	if isRegularFile(file) {
		http.ServeFile(w, r, file)
		return
	}

	index := filepath.Join(h.frontendDir, "index.html")
	if isRegularFile(index) {
		http.ServeFile(w, r, index)
		return
	}

	h.logger.Warn().Str("path", r.URL.Path).Msg("Page not found and no index.html to fall back to")
	http.Error(w, "Страница не найдена", http.StatusNotFound)
}

// prettyURLs redirects page requests ending in .html to the URL without it.
func prettyURLs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if (r.Method != http.MethodGet && r.Method != http.MethodHead) || !strings.HasSuffix(p, ".html") || isAssetPath(p) || isAPIPath(p) {
			next.ServeHTTP(w, r)
			return
		}

		target := strings.TrimSuffix(p, ".html")
		target = strings.TrimPrefix(target, "/pages")
		if target == "" || target == "/index" {
			target = "/"
		}
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})
}

func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}

func isAssetPath(p string) bool {
	for _, prefix := range []string{"/css/", "/js/", "/assets/"} {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func isRegularFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
