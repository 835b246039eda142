package api

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/catalog-comb/app/publish"
)

func NewHandler(publicDir, version string) *Handler {
	return &Handler{
		publicDir: publicDir,
		version:   version,
	}
}

// ServeFile returns a handler for one published file.
func (h *Handler) ServeFile(name, contentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := filepath.Join(h.publicDir, name)

		info, err := os.Stat(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Error("Failed to stat published file", "file", name, "error", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			c.Status(http.StatusNotFound)
			return
		}
		if info.IsDir() {
			c.Status(http.StatusNotFound)
			return
		}

		if lastRun, ok := h.readMarker(publish.LastRunFile); ok {
			c.Header("X-Last-Run", lastRun)
		}
		c.Header("Content-Type", contentType)
		c.File(path)
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	response := HealthResponse{
		Status:  "ok",
		Version: h.version,
	}
	response.LastRun, _ = h.readMarker(publish.LastRunFile)

	ping, ok := h.readMarker(publish.PingFile)
	if !ok || ping != publish.PingOK {
		response.Status = "unavailable"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) readMarker(name string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(h.publicDir, name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Failed to read marker", "file", name, "error", err)
		}
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}
