package chi

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

const pdfFetchTimeout = 30 * time.Second

// PDFProxy streams CMS-hosted PDFs with a download disposition, so the
// browser saves the file instead of navigating to the upload host.
type PDFProxy struct {
	allowedHosts []string
	http         *http.Client
	logger       *zap.Logger
}

// NewPDFProxy creates the GET /api/pdf handler. allowedHosts restricts the
// proxy to the given host suffixes; empty means the proxy is disabled.
func NewPDFProxy(allowedHosts []string, logger *zap.Logger) *PDFProxy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFProxy{
		allowedHosts: allowedHosts,
		http:         &http.Client{Timeout: pdfFetchTimeout},
		logger:       logger,
	}
}

func (p *PDFProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "url query parameter is required")
		return
	}

	target, err := url.Parse(raw)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "url must be an absolute http(s) URL")
		return
	}
	if !p.hostAllowed(target.Host) {
		writeError(w, http.StatusForbidden, codeValidationFailed, "url host is not allowed")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "invalid url")
		return
	}

	resp, err := p.http.Do(req)
	if err != nil {
		p.logger.Warn("PDF fetch failed", zap.String("url", target.String()), zap.Error(err))
		writeError(w, http.StatusBadGateway, codeUpstreamUnavailable, "failed to fetch document")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("PDF host answered non-OK",
			zap.String("url", target.String()), zap.Int("status", resp.StatusCode))
		writeError(w, http.StatusBadGateway, codeUpstreamUnavailable, "document host answered with an error")
		return
	}

	filename := path.Base(target.Path)
	if filename == "." || filename == "/" || filename == "" {
		filename = "document.pdf"
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if length := resp.Header.Get("Content-Length"); length != "" {
		w.Header().Set("Content-Length", length)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		p.logger.Warn("PDF stream interrupted", zap.String("url", target.String()), zap.Error(err))
	}
}

// hostAllowed matches the host or any parent domain against the allowlist.
func (p *PDFProxy) hostAllowed(host string) bool {
	host = strings.ToLower(host)
	for _, allowed := range p.allowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if allowed == "" {
			continue
		}
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}
