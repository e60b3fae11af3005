// Package httpapi exposes the render pipeline over HTTP: a render endpoint
// that accepts a PDF and returns a raster print stream, and a health check.
package httpapi

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/printraster/rasterpress/internal/config"
	"github.com/printraster/rasterpress/internal/middleware"
	"github.com/printraster/rasterpress/internal/pipeline"
	"github.com/printraster/rasterpress/internal/raster/rasterr"
	"github.com/printraster/rasterpress/internal/rasterize"
)

// maxUploadBytes bounds the multipart body; a malicious or oversized PDF
// should not be read fully into memory before validation.
const maxUploadBytes = 256 << 20

// Server wires the render pipeline into gin route handlers.
type Server struct {
	Rasterizer rasterize.Rasterizer
	Config     *config.Config
}

// RegisterRoutes wires up API routes onto the provided gin router.
func (s *Server) RegisterRoutes(router *gin.Engine) {
	router.Use(middleware.CORSMiddleware())

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api/v1")
	api.Use(middleware.GoogleAuthMiddleware(s.Config.Server.RequireIDToken))
	api.POST("/render", s.handleRender)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleRender accepts a multipart "pdf" file plus optional "dpi" and
// "format" fields (format is "pwg" or "urf"), runs it through the pipeline,
// and streams back the raster bytes with the matching content type.
func (s *Server) handleRender(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, header, err := c.Request.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'pdf' file field"})
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must have a .pdf extension"})
		return
	}

	pdfBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded PDF: " + err.Error()})
		return
	}

	format, err := parseFormat(c.DefaultPostForm("format", s.Config.Render.DefaultFormat))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dpi, err := parseDPI(c.DefaultPostForm("dpi", strconv.Itoa(s.Config.Render.DefaultDPI)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := pipeline.Render(c.Request.Context(), s.Rasterizer, pdfBytes, dpi, dpi, format)
	if err != nil {
		writeRenderError(c, err)
		return
	}

	c.Header("Content-Type", contentType(format))
	c.Header("Content-Disposition", "attachment; filename=output"+fileExt(format))
	c.Data(http.StatusOK, contentType(format), out)
}

func parseFormat(s string) (pipeline.Format, error) {
	switch strings.ToLower(s) {
	case "pwg", "":
		return pipeline.PWG, nil
	case "urf":
		return pipeline.URF, nil
	default:
		return 0, errInvalidFormat(s)
	}
}

func parseDPI(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errInvalidDPI(s)
	}
	switch v {
	case 300, 400, 600:
		return v, nil
	default:
		return 0, errInvalidDPI(s)
	}
}

func errInvalidFormat(s string) error {
	return &invalidParamError{param: "format", value: s, allowed: "pwg, urf"}
}

func errInvalidDPI(s string) error {
	return &invalidParamError{param: "dpi", value: s, allowed: "300, 400, 600"}
}

type invalidParamError struct {
	param   string
	value   string
	allowed string
}

func (e *invalidParamError) Error() string {
	return "invalid " + e.param + " " + strconv.Quote(e.value) + ": must be one of " + e.allowed
}

func contentType(f pipeline.Format) string {
	if f == pipeline.URF {
		return "application/urf"
	}
	return "application/vnd.pwg-raster"
}

func fileExt(f pipeline.Format) string {
	if f == pipeline.URF {
		return ".urf"
	}
	return ".pwg"
}

// writeRenderError maps a rasterr.Error to a status code, 502 for the
// rasterizer side of the contract and 500 for an output I/O failure.
func writeRenderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var rerr *rasterr.Error
	if as, ok := err.(*rasterr.Error); ok {
		rerr = as
		if rerr.Kind == rasterr.KindRender {
			status = http.StatusBadGateway
		}
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
