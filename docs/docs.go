// Package docs holds the Swagger 2.0 document served under /swagger/. It
// follows the layout written by swag init and must be kept in step with the
// handler annotations.
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
        "/api/auth": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Get the authenticated user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Authenticate user and get token",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ValidationError"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "string"}}
                }
            }
        },
        "/api/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register user",
                "parameters": [
                    {"description": "Account details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.tokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ValidationError"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "string"}}
                }
            }
        },
        "/api/{kind}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [
                    {"type": "string", "description": "equipmentPosts or trailPosts", "name": "kind", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Post"}}}
                }
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create a post",
                "parameters": [
                    {"type": "string", "description": "equipmentPosts or trailPosts", "name": "kind", "in": "path", "required": true},
                    {"description": "Kind-specific fields", "name": "body", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": {}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Post"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ValidationError"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/api/{kind}/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get post by id",
                "parameters": [
                    {"type": "string", "description": "equipmentPosts or trailPosts", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Post"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Delete post",
                "parameters": [
                    {"type": "string", "description": "equipmentPosts or trailPosts", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/api/{kind}/like/{id}": {
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Like post",
                "parameters": [
                    {"type": "string", "description": "equipmentPosts or trailPosts", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Like"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/api/{kind}/unlike/{id}": {
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Unlike post",
                "parameters": [
                    {"type": "string", "description": "equipmentPosts or trailPosts", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Like"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/api/{kind}/comment/{id}": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Comment on post",
                "parameters": [
                    {"type": "string", "description": "equipmentPosts or trailPosts", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true},
                    {"description": "Comment", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.commentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Comment"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ValidationError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/api/{kind}/comment/{id}/{comment_id}": {
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Delete comment",
                "parameters": [
                    {"type": "string", "description": "equipmentPosts or trailPosts", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "description": "Post id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Comment id", "name": "comment_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Comment"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Comment": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "avatar": {"type": "string"},
                "date": {"type": "string"},
                "name": {"type": "string"},
                "text": {"type": "string"},
                "user": {"type": "string"}
            }
        },
        "domain.Like": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "user": {"type": "string"}
            }
        },
        "domain.Post": {
            "type": "object",
            "additionalProperties": {},
            "properties": {
                "_id": {"type": "string"},
                "avatar": {"type": "string"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/domain.Comment"}},
                "date": {"type": "string"},
                "likes": {"type": "array", "items": {"$ref": "#/definitions/domain.Like"}},
                "name": {"type": "string"},
                "user": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "avatar": {"type": "string"},
                "date": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "handler.FieldError": {
            "type": "object",
            "properties": {
                "location": {"type": "string"},
                "msg": {"type": "string"},
                "param": {"type": "string"},
                "value": {}
            }
        },
        "handler.ValidationError": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"$ref": "#/definitions/handler.FieldError"}}
            }
        },
        "handler.commentRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string"}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {
                "msg": {"type": "string"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "dependencies": {"type": "object", "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}},
                "status": {"type": "string"}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "name"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "password2": {"type": "string"}
            }
        },
        "handler.tokenResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "x-auth-token",
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
	Title:            "TrailMate API",
	Description:      "Equipment reviews and trail reports with likes and comments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
