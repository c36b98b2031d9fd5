// Package docs registers the OpenAPI document served at /swagger. The route
// and schema definitions are kept in sync with the swag annotations on the
// feature handlers.
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
        "/trips": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "Create a trip",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/trips/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "Get a trip",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/trips/{id}/participants": {
            "get": {
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "List trip participants",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trips"],
                "summary": "Add a participant",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/expenses": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Create an expense",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/expenses/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Get an expense",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Update an expense",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "Delete an expense",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/expenses/trip/{tripId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["expenses"],
                "summary": "List trip expenses",
                "parameters": [
                    {"type": "string", "name": "tripId", "in": "path", "required": true},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/balances/trip/{tripId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["balances"],
                "summary": "Get trip balances",
                "parameters": [
                    {"type": "string", "name": "tripId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/settlements": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settlements"],
                "summary": "Record a settlement",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/settlements/trip/{tripId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settlements"],
                "summary": "List trip settlements",
                "parameters": [
                    {"type": "string", "name": "tripId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/settlements/trip/{tripId}/suggestions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settlements"],
                "summary": "Suggest settlements",
                "parameters": [
                    {"type": "string", "name": "tripId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "TripThreads API",
	Description:      "Collaborative trip planning with expense splitting and debt settlement.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
