package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const openAPISpec = `openapi: 3.0.3
info:
  title: Birthdays API
  version: "1.0"
paths:
  /hello/{name}:
    parameters:
      - name: name
        in: path
        required: true
        schema: { type: string, pattern: "^[A-Za-z]+$" }
    put:
      summary: Save or replace the date of birth for name
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              additionalProperties: false
              required: [dateOfBirth]
              properties:
                dateOfBirth: { type: string, format: date }
      responses:
        "204": { description: Saved }
        "400": { $ref: "#/components/responses/Error" }
        "500": { $ref: "#/components/responses/Error" }
    get:
      summary: Greet name and report days until the next birthday
      responses:
        "200":
          description: Greeting
          content:
            application/json:
              schema:
                type: object
                properties:
                  message: { type: string }
        "404": { $ref: "#/components/responses/Error" }
        "500": { $ref: "#/components/responses/Error" }
  /healthz:
    get:
      summary: Liveness
      responses:
        "200": { description: Alive }
  /readyz:
    get:
      summary: Readiness, pings the document store
      responses:
        "200": { description: Ready }
        "503": { $ref: "#/components/responses/Error" }
components:
  responses:
    Error:
      description: Error
      content:
        application/json:
          schema:
            type: object
            properties:
              error: { type: string }
`

const swaggerUIHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width,initial-scale=1" />
    <title>Birthdays API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: "/docs/openapi.yaml",
        dom_id: "#swagger-ui",
        presets: [SwaggerUIBundle.presets.apis],
        layout: "BaseLayout"
      });
    </script>
  </body>
</html>`

func SwaggerUI(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerUIHTML))
}

func OpenAPISpec(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "application/yaml; charset=utf-8", []byte(openAPISpec))
}
