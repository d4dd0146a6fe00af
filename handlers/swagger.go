package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves the OpenAPI document and a Swagger UI page that loads it.
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>folio-api Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "folio-api", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } },
    "schemas": {
      "Message": { "type": "object", "properties": { "message": { "type": "string" }, "success": { "type": "boolean" } } },
      "Lead": { "type": "object", "properties": {
        "_id": { "type": "string" }, "name": { "type": "string" }, "email": { "type": "string" }, "mobile": { "type": "string" },
        "message": { "type": "string" }, "ipAddress": { "type": "string" }, "userAgent": { "type": "string" }, "createdAt": { "type": "string", "format": "date-time" } } },
      "LeadInput": { "type": "object", "required": ["name", "email", "mobile"], "properties": {
        "name": { "type": "string" }, "email": { "type": "string" }, "mobile": { "type": "string" }, "message": { "type": "string" } } },
      "Profile": { "type": "object", "properties": {
        "name": { "type": "string" }, "title": { "type": "string" }, "email": { "type": "string" }, "about": { "type": "string" },
        "skills": { "type": "array", "items": { "type": "string" } },
        "experience": { "type": "array", "items": { "type": "object", "properties": {
          "position": { "type": "string" }, "company": { "type": "string" }, "duration": { "type": "string" },
          "description": { "oneOf": [ { "type": "array", "items": { "type": "string" } }, { "type": "string" } ] } } } },
        "projects": { "type": "array", "items": { "type": "object", "properties": {
          "title": { "type": "string" }, "tech": { "type": "string" }, "technologies": { "type": "array", "items": { "type": "string" } },
          "description": { "type": "string" }, "github": { "type": "string" }, "live": { "type": "string" } } } },
        "socialLinks": { "type": "object", "additionalProperties": { "type": "string" } },
        "contact": { "type": "object", "properties": { "email": { "type": "string" }, "phone": { "type": "string" }, "linkedin": { "type": "string" }, "github": { "type": "string" } } },
        "createdAt": { "type": "string", "format": "date-time" }, "updatedAt": { "type": "string", "format": "date-time" } } }
    }
  },
  "paths": {
    "/api/health": {
      "get": { "summary": "Liveness and store connectivity", "responses": { "200": { "description": "running; database is Connected or Disconnected" } } }
    },
    "/api/portfolio": {
      "get": { "summary": "Read the profile", "responses": { "200": { "description": "profile" }, "404": { "description": "no profile yet" }, "503": { "description": "store unavailable" } } },
      "post": { "summary": "Create or replace the profile", "security": [{ "bearer": [] }],
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Profile" } } } },
        "responses": { "200": { "description": "stored profile" }, "400": { "description": "invalid payload or store error" }, "401": { "description": "admin token required when the gate is enabled" } } },
      "put": { "summary": "Create or replace the profile", "security": [{ "bearer": [] }],
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Profile" } } } },
        "responses": { "200": { "description": "stored profile" }, "400": { "description": "invalid payload or store error" }, "401": { "description": "admin token required when the gate is enabled" } } }
    },
    "/api/contact": {
      "post": { "summary": "Submit a lead",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/LeadInput" } } } },
        "responses": { "201": { "description": "acknowledged" }, "400": { "description": "missing field or invalid email" }, "500": { "description": "unexpected error" }, "503": { "description": "store unavailable with CONTACT_REQUIRE_STORE" } } },
      "get": { "summary": "List leads, newest first", "security": [{ "bearer": [] }],
        "responses": { "200": { "description": "leads", "content": { "application/json": { "schema": { "type": "array", "items": { "$ref": "#/components/schemas/Lead" } } } } }, "401": { "description": "admin token required when the gate is enabled" }, "503": { "description": "store unavailable" } } }
    }
  }
}`
