package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Viewer API",
        "description": "Search and filter the course catalog by text and meeting day.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Courses", "description": "Stateless catalog filtering and downloads"},
        {"name": "Sessions", "description": "Per-visitor filter state"},
        {"name": "Catalog", "description": "Catalog operations"}
    ],
    "paths": {
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "Filter the course catalog",
                "produces": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/q"},
                    {"$ref": "#/parameters/days"},
                    {"$ref": "#/parameters/mode"},
                    {"$ref": "#/parameters/columns"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ViewEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Catalog unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/export": {
            "get": {
                "tags": ["Courses"],
                "summary": "Download the filtered catalog",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "xlsx", "pdf"], "default": "csv"},
                    {"$ref": "#/parameters/q"},
                    {"$ref": "#/parameters/days"},
                    {"$ref": "#/parameters/mode"},
                    {"$ref": "#/parameters/columns"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/columns": {
            "get": {
                "tags": ["Courses"],
                "summary": "List displayable columns",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/days": {
            "get": {
                "tags": ["Courses"],
                "summary": "List weekday glyphs in selection order",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/sessions": {
            "post": {
                "tags": ["Sessions"],
                "summary": "Open a filter session",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/SessionEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Get a filter session",
                "parameters": [{"$ref": "#/parameters/sessionId"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SessionEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Sessions"],
                "summary": "Change the query or visible columns",
                "consumes": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/sessionId"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSessionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SessionEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/days": {
            "put": {
                "tags": ["Sessions"],
                "summary": "Commit the day selection and match mode",
                "consumes": ["application/json"],
                "parameters": [
                    {"$ref": "#/parameters/sessionId"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitDaysRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SessionEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/sessions/{id}/courses": {
            "get": {
                "tags": ["Sessions"],
                "summary": "Filter the catalog with a session's state",
                "parameters": [{"$ref": "#/parameters/sessionId"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ViewEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalog/refresh": {
            "post": {
                "tags": ["Catalog"],
                "summary": "Force a catalog reload",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Catalog unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "parameters": {
        "q": {"name": "q", "in": "query", "type": "string", "description": "Regular expression matched against Title, Instructor and Id"},
        "days": {"name": "days", "in": "query", "type": "array", "items": {"type": "string", "enum": ["一", "二", "三", "四", "五", "六", "日"]}, "collectionFormat": "multi"},
        "mode": {"name": "mode", "in": "query", "type": "string", "enum": ["Subset", "AllMatched"], "default": "Subset"},
        "columns": {"name": "columns", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
        "sessionId": {"name": "id", "in": "path", "type": "string", "required": true}
    },
    "definitions": {
        "View": {
            "type": "object",
            "properties": {
                "columns": {"type": "array", "items": {"type": "string"}},
                "rows": {"type": "array", "items": {"type": "array", "items": {"type": "string"}}},
                "count": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "Session": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "query": {"type": "string"},
                "mode": {"type": "string"},
                "columns": {"type": "array", "items": {"type": "string"}},
                "days": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "CreateSessionRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "mode": {"type": "string"},
                "columns": {"type": "array", "items": {"type": "string"}},
                "days": {"type": "array", "items": {"type": "string"}}
            }
        },
        "UpdateSessionRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "columns": {"type": "array", "items": {"type": "string"}}
            }
        },
        "SubmitDaysRequest": {
            "type": "object",
            "properties": {
                "days": {"type": "array", "items": {"type": "string"}},
                "mode": {"type": "string", "enum": ["Subset", "AllMatched"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        },
        "ViewEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/View"},
                "meta": {"type": "object"}
            }
        },
        "SessionEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/Session"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
