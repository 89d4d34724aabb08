// Package swagger holds the generated OpenAPI document for the HTTP API.
// Regenerate with: swag init -g cmd/start.go -o docs/swagger
package swagger

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
        "/tracker/import": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tracker"],
                "summary": "Import Snapshot",
                "description": "Parse a snapshot document and reconcile it into the store. Returns per-kind counts and warnings.",
                "responses": {
                    "200": {"description": "Import Report"},
                    "400": {"description": "Malformed or unsupported snapshot"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/tracker/export": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tracker"],
                "summary": "Export Snapshot",
                "description": "Render all non-deleted entities as a snapshot document suitable for re-import.",
                "responses": {
                    "200": {"description": "Snapshot document"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/tracker/projects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tracker"],
                "summary": "List Projects",
                "description": "List non-deleted projects, optionally filtered by status.",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query", "description": "Project status filter"}
                ],
                "responses": {
                    "200": {"description": "Projects"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/tracker/projects/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["tracker"],
                "summary": "Delete Project",
                "description": "Physically remove a project together with its entries, commitments and reflections.",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true, "description": "Project ID"}
                ],
                "responses": {
                    "200": {"description": "Deletion confirmation"},
                    "404": {"description": "Project not found"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/tracker/commitments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tracker"],
                "summary": "List Commitments",
                "description": "List non-deleted commitments, optionally filtered by status and direction.",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query", "description": "Commitment status filter"},
                    {"type": "string", "name": "direction", "in": "query", "description": "Commitment direction filter"}
                ],
                "responses": {
                    "200": {"description": "Commitments"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Leader Dojo API",
	Description:      "API for the personal leadership tracker store.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
