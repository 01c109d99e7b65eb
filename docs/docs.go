// Package docs is generated by swag from the handler annotations. Regenerate with
// `swag init -g cmd/main.go` after changing them.
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
        "/health": {
            "get": {
                "description": "Reports the vendor session state: NO_TOKEN, AUTHENTICATING or AUTHENTICATED.",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-up": {
            "post": {
                "description": "The first account can always be created; later ones need auth.allow_sign_up.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create a local API account",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}
                ],
                "responses": {
                    "200": {"description": "token", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/accessory/state": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Characteristic values currently published by the bridge.",
                "produces": ["application/json"],
                "tags": ["accessory"],
                "summary": "Get accessory state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AccessoryState"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/accessory/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Fetches a reading from the vendor immediately. On failure the cached air quality is returned with 502.",
                "produces": ["application/json"],
                "tags": ["accessory"],
                "summary": "Refresh now",
                "responses": {
                    "200": {"description": "status, air_quality, state", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "error, air_quality", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/accessory/air-quality": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Answers at once with the cached air quality (UNKNOWN before the first reading) and fetches a fresh reading in the background; the fresh value is published to the accessory when it arrives.",
                "produces": ["application/json"],
                "tags": ["accessory"],
                "summary": "Current air quality",
                "responses": {
                    "200": {"description": "air_quality, value, session", "schema": {"type": "object", "additionalProperties": true}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/readings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Newest first. Time bounds accept RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'.",
                "produces": ["application/json"],
                "tags": ["readings"],
                "summary": "List stored readings",
                "parameters": [
                    {"type": "string", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "description": "End of range; date-only means end of day", "name": "to", "in": "query"},
                    {"type": "integer", "description": "Maximum rows (default 500, max 5000)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, readings", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/readings/latest": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["readings"],
                "summary": "Latest stored reading",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Reading"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Vendor session log. A date-only 'to' is treated as end of day inclusive.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List session events",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')", "name": "to", "in": "query"},
                    {"enum": ["LOGIN", "LOGIN_FAILED", "TOKEN_INVALIDATED", "FETCH_ERROR", "PARSE_ERROR"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ws": {
            "get": {
                "description": "WebSocket. Sends the accessory snapshot on connect and again whenever a characteristic changes. The registry is checked every ?interval (default 1s, max 10s).",
                "tags": ["accessory"],
                "summary": "Stream accessory state",
                "parameters": [
                    {"type": "string", "example": "500ms", "description": "Check period, Go duration", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "Check period in milliseconds", "name": "interval_ms", "in": "query"}
                ],
                "responses": {}
            }
        }
    },
    "definitions": {
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "example": "change-me"},
                "username": {"type": "string", "example": "admin"}
            }
        },
        "models.AccessoryState": {
            "type": "object",
            "properties": {
                "air_quality": {"type": "string"},
                "name": {"type": "string"},
                "updated_at": {"type": "string"},
                "values": {"type": "object", "additionalProperties": {"type": "number"}}
            }
        },
        "models.Reading": {
            "type": "object",
            "properties": {
                "co": {"type": "number"},
                "co2": {"type": "number"},
                "dust": {"type": "number"},
                "humidity": {"type": "number"},
                "id": {"type": "integer"},
                "no2": {"type": "number"},
                "observed_at": {"type": "string"},
                "ozone": {"type": "number"},
                "temp": {"type": "number"},
                "voc": {"type": "number"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT from /auth/sign-in.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "uHoo bridge API",
	Description:      "Air quality accessory published from a uHoo account.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
