// Package openapi serves the Swagger UI over the OpenAPI document generated
// by huma.
package openapi

import (
	"net/http"
	"strings"
	"text/template"

	"github.com/labstack/echo/v4"
)

// DocsPath is where the Swagger UI is mounted.
const DocsPath = "/api/v1/docs"

var swaggerUI = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: "{{.SpecURL}}",
      dom_id: "#swagger-ui",
      presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
      layout: "BaseLayout",
    });
  </script>
</body>
</html>`))

// RegisterRoutes adds the Swagger UI for the document at specURL.
func RegisterRoutes(e *echo.Echo, title, specURL string) {
	page := new(strings.Builder)
	_ = swaggerUI.Execute(page, struct{ Title, SpecURL string }{title, specURL})
	html := page.String()

	e.GET(DocsPath, func(c echo.Context) error {
		return c.HTML(http.StatusOK, html)
	})
	e.GET(DocsPath+"/", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, DocsPath)
	})
}
