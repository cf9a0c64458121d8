// Package docs registers the OpenAPI document served at /openapi.json.
// Regenerate with: swag init -g cmd/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "User login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "429": {"description": "Too Many Requests"}}}},
        "/auth/refresh": {"post": {"tags": ["auth"], "summary": "Refresh access token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/verify-email": {"post": {"tags": ["auth"], "summary": "Verify user email", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}}}},
        "/auth/logout": {"post": {"tags": ["auth"], "summary": "User logout", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/auth/profile": {
            "get": {"tags": ["auth"], "summary": "Get user profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["auth"], "summary": "Update user profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/plans": {"get": {"tags": ["plans"], "summary": "List plans", "responses": {"200": {"description": "OK"}}}},
        "/plans/{id}": {"get": {"tags": ["plans"], "summary": "Get plan", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/checkout/cart": {"post": {"tags": ["plans"], "summary": "Build checkout cart", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/subscription": {
            "get": {"tags": ["subscription"], "summary": "Get subscription", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["subscription"], "summary": "Activate plan", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "402": {"description": "Payment Required"}, "409": {"description": "Conflict"}}}
        },
        "/content": {"get": {"tags": ["content"], "summary": "List content", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/content/{id}": {"get": {"tags": ["content"], "summary": "Get content item", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/legal": {"get": {"tags": ["legal"], "summary": "List legal pages", "responses": {"200": {"description": "OK"}}}},
        "/legal/{slug}": {"get": {"tags": ["legal"], "summary": "Get legal page", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/documents": {"get": {"tags": ["documents"], "summary": "List documents", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/documents/upload": {"post": {"tags": ["documents"], "summary": "Start document upload", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}},
        "/documents/complete": {"post": {"tags": ["documents"], "summary": "Complete document upload", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/documents/download": {"get": {"tags": ["documents"], "summary": "Document download URL", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/plans": {"put": {"tags": ["admin"], "summary": "Create or replace plan", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/admin/subscriptions": {"post": {"tags": ["admin"], "summary": "Activate plan for a user", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}},
        "/admin/audit-logs": {"get": {"tags": ["admin"], "summary": "List audit logs", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "TierHub API",
	Description:      "Membership platform API: accounts, pricing, subscriptions, tiered content and documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
