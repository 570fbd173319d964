// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/server/main.go`.
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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Logs a member in",
                "parameters": [{"in": "body", "name": "loginRequest", "required": true, "schema": {"$ref": "#/definitions/api.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TokenResponse"}}, "401": {"description": "Invalid email or password"}}
            }
        },
        "/items/geolocation": {
            "get": {
                "tags": ["items"],
                "summary": "Map geolocations",
                "parameters": [{"type": "string", "name": "parentItemId", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "parentItemId is required"}}
            }
        },
        "/items/{itemId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Get an item",
                "parameters": [{"type": "string", "name": "itemId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ItemResponse"}},
                    "401": {"description": "Sign in or item login required", "schema": {"$ref": "#/definitions/api.ItemLoginRequiredResponse"}},
                    "403": {"description": "Access denied"},
                    "404": {"description": "Item not found"}
                }
            }
        },
        "/items/{itemId}/children": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "List children",
                "parameters": [
                    {"type": "string", "name": "itemId", "in": "path", "required": true},
                    {"type": "boolean", "name": "pinned", "in": "query"},
                    {"type": "boolean", "name": "content", "in": "query"},
                    {"type": "string", "name": "types", "in": "query"},
                    {"type": "boolean", "name": "shuffle", "in": "query"},
                    {"type": "string", "name": "rootId", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid query"}}
            }
        },
        "/items/{itemId}/descendants": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "List descendants",
                "parameters": [
                    {"type": "string", "name": "itemId", "in": "path", "required": true},
                    {"type": "string", "name": "types", "in": "query"},
                    {"type": "boolean", "name": "showHidden", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/items/{itemId}/navigation": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Navigation",
                "parameters": [
                    {"type": "string", "name": "itemId", "in": "path", "required": true},
                    {"type": "string", "name": "rootId", "in": "query", "required": true},
                    {"type": "boolean", "name": "shuffle", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/items/{itemId}/tags": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "List visibility tags",
                "parameters": [{"type": "string", "name": "itemId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/items/{itemId}/geolocation": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Get geolocation",
                "parameters": [{"type": "string", "name": "itemId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "204": {"description": "No location on the path"}}
            }
        },
        "/items/{itemId}/download": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["items"],
                "summary": "Download document content",
                "parameters": [{"type": "string", "name": "itemId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Item or content not found"}}
            }
        },
        "/items/{itemId}/login-schema-type": {
            "get": {
                "tags": ["auth"],
                "summary": "Item login schema type",
                "parameters": [{"type": "string", "name": "itemId", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.LoginSchemaTypeResponse"}}, "404": {"description": "Item not found or no login schema"}}
            }
        },
        "/items/{itemId}/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Pseudonymized item login",
                "parameters": [
                    {"type": "string", "name": "itemId", "in": "path", "required": true},
                    {"in": "body", "name": "itemLoginRequest", "required": true, "schema": {"$ref": "#/definitions/api.ItemLoginRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid username or password"}}
            }
        },
        "/items/{itemId}/enroll": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Enroll into an item",
                "parameters": [{"type": "string", "name": "itemId", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Already a member"}}
            }
        },
        "/items/{itemId}/memberships/requests": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["memberships"],
                "summary": "Request membership",
                "parameters": [{"type": "string", "name": "itemId", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Already a member or already requested"}}
            }
        },
        "/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["members"],
                "summary": "Get current member info",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        }
    },
    "definitions": {
        "api.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string", "example": "anna@example.com"}, "password": {"type": "string", "example": "password123"}}
        },
        "api.TokenResponse": {
            "type": "object",
            "properties": {"access_token": {"type": "string"}}
        },
        "api.ItemLoginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string", "example": "pseudo-42"}, "password": {"type": "string"}}
        },
        "api.ItemLoginRequiredResponse": {
            "type": "object",
            "properties": {"item_login_schema": {"type": "string", "example": "username+password"}, "item_id": {"type": "string"}}
        },
        "api.ItemResponse": {
            "type": "object",
            "properties": {"item": {"type": "object"}, "permission": {"type": "string", "example": "read"}}
        },
        "api.LoginSchemaTypeResponse": {
            "type": "object",
            "properties": {"type": {"type": "string", "example": "username"}, "item_id": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Item Access API",
	Description:      "Access and visibility resolution over a tree of items.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
