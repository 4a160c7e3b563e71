package handler

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/deppfellow/biztime/internal/server"
	"github.com/labstack/echo/v4"
)

//go:embed static/openapi.json static/openapi.html
var docsFS embed.FS

// OpenAPIHandler serves the API description and a docs UI that renders it.
// Both files are compiled into the binary.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPISpec writes static/openapi.json.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	return h.serve(c, "static/openapi.json", echo.MIMEApplicationJSON)
}

// ServeOpenAPIUI writes static/openapi.html.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	return h.serve(c, "static/openapi.html", echo.MIMETextHTMLCharsetUTF8)
}

func (h *OpenAPIHandler) serve(c echo.Context, name, contentType string) error {
	data, err := docsFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	// Docs change with every deploy.
	c.Response().Header().Set("Cache-Control", "no-cache")

	return c.Blob(http.StatusOK, contentType, data)
}
