package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>pulsedash — Swagger</title>
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

// Minimal OpenAPI document describing the dashboard API.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "pulsedash", "version": "v0.1.0" },
  "paths": {
    "/api/auth/signup": {
      "post": {
        "summary": "Create a user account",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "201": { "description": "user created" }, "400": { "description": "duplicate email or invalid input" } }
      }
    },
    "/api/auth/login": {
      "post": {
        "summary": "Exchange credentials for a 24h session token",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "token and redacted user" }, "400": { "description": "invalid credentials" } }
      }
    },
    "/api/auth/me": {
      "get": { "summary": "Current user (bearer token)", "responses": { "200": { "description": "user" }, "401": { "description": "missing or invalid token" }, "404": { "description": "record gone" } } }
    },
    "/api/users": {
      "get": { "summary": "List all users, password hash stripped", "responses": { "200": { "description": "users in store order" }, "401": { "description": "missing or invalid token" } } }
    },
    "/api/dashboard/stats": {
      "get": { "summary": "Dashboard statistics", "responses": { "200": { "description": "totalUsers, sessions, clickRate, pageviews" }, "401": { "description": "missing or invalid token" } } }
    },
    "/api/seed": {
      "post": { "summary": "Reset store to sample users (development only)", "responses": { "200": { "description": "seeded" }, "403": { "description": "disabled in production" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
