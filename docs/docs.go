// Package docs registers the OpenAPI description of the store API with swag.
// The route-level annotations live on the handlers; this file carries the
// document header and the shared definitions served at /swagger/doc.json.
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
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "User Registration",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "registerBody", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "User created successfully", "schema": {"$ref": "#/definitions/auth.AuthResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "User Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "loginBody", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/auth.AuthResponse"}},
                    "400": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "429": {"description": "Too many login attempts", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Refresh Tokens",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "refreshBody", "required": true, "schema": {"$ref": "#/definitions/auth.RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "Tokens refreshed", "schema": {"$ref": "#/definitions/auth.TokenPair"}},
                    "401": {"description": "Invalid or expired refresh token", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "List user profiles",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/users.ProfileResponse"}}}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Get own profile",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.ProfileResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["Users"],
                "summary": "Update own profile",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/users.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/users.ProfileResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/categories": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List categories",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.CategoryResponse"}}}
                }
            }
        },
        "/products": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List products",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Category ID", "name": "category", "in": "query"},
                    {"type": "boolean", "description": "Active flag", "name": "active", "in": "query"},
                    {"type": "number", "description": "Price strictly greater than", "name": "price__gt", "in": "query"},
                    {"type": "number", "description": "Price strictly less than", "name": "price__lt", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.ProductListItem"}}},
                    "400": {"description": "Malformed filter value", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Get product",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.ProductDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/products/{id}/ratings": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Catalog"],
                "summary": "Rate product",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.RatingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/catalog.RatingResponse"}}
                }
            }
        },
        "/products/{id}/reviews": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Catalog"],
                "summary": "Review product",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.ReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/catalog.ReviewResponse"}}
                }
            }
        },
        "/cart": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Cart"],
                "summary": "Get cart",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.CartResponse"}}
                }
            }
        },
        "/cart/items": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Cart"],
                "summary": "Add item to cart",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/cart.AddItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/cart.ItemResponse"}},
                    "400": {"description": "Unknown product_id or invalid quantity", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/cart/items/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["Cart"],
                "summary": "Set cart item quantity",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Cart item ID", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/cart.UpdateItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.ItemResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Cart"],
                "summary": "Remove cart item",
                "parameters": [
                    {"type": "integer", "description": "Cart item ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "apperror.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid input: [product_id]"},
                "fields": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "auth.RegisterRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "username": {"type": "string", "maxLength": 150, "example": "newuser"},
                "email": {"type": "string", "example": "user@example.com"},
                "password": {"type": "string", "minLength": 8, "maxLength": 72, "example": "strongpassword123"},
                "first_name": {"type": "string", "example": "Aibek"},
                "last_name": {"type": "string", "example": "Nurlanov"},
                "age": {"type": "integer", "example": 27},
                "phone_number": {"type": "string", "example": "+996555123456"},
                "status": {"type": "string", "example": "simple"}
            }
        },
        "auth.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "username": {"type": "string", "example": "newuser"},
                "password": {"type": "string", "example": "strongpassword123"}
            }
        },
        "auth.RefreshTokenRequest": {
            "type": "object",
            "required": ["refresh"],
            "properties": {
                "refresh": {"type": "string"}
            }
        },
        "auth.TokenPair": {
            "type": "object",
            "properties": {
                "access": {"type": "string"},
                "refresh": {"type": "string"}
            }
        },
        "auth.AuthUser": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "example": "newuser"},
                "email": {"type": "string", "example": "user@example.com"}
            }
        },
        "auth.AuthResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/auth.AuthUser"},
                "access": {"type": "string"},
                "refresh": {"type": "string"}
            }
        },
        "users.ProfileResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "username": {"type": "string", "example": "newuser"},
                "email": {"type": "string", "example": "user@example.com"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "age": {"type": "integer"},
                "phone_number": {"type": "string"},
                "status": {"type": "string", "example": "simple"},
                "date_registered": {"type": "string", "example": "2024-03-01"},
                "is_active": {"type": "boolean"}
            }
        },
        "users.ProfileDetail": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"}
            }
        },
        "users.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "age": {"type": "integer"},
                "phone_number": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "catalog.CategoryResponse": {
            "type": "object",
            "properties": {
                "category_name": {"type": "string", "example": "Phones"}
            }
        },
        "catalog.PhotoResponse": {
            "type": "object",
            "properties": {
                "image": {"type": "string"}
            }
        },
        "catalog.RatingRequest": {
            "type": "object",
            "required": ["stars"],
            "properties": {
                "stars": {"type": "integer", "minimum": 1, "maximum": 5, "example": 5}
            }
        },
        "catalog.RatingResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/users.ProfileDetail"},
                "stars": {"type": "integer", "example": 4}
            }
        },
        "catalog.ReviewRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {
                "text": {"type": "string"},
                "parent_review": {"type": "integer"}
            }
        },
        "catalog.ReviewResponse": {
            "type": "object",
            "properties": {
                "author": {"$ref": "#/definitions/users.ProfileDetail"},
                "text": {"type": "string"},
                "created_name": {"type": "string", "example": "17-10-2026"},
                "parent_review": {"type": "integer"}
            }
        },
        "catalog.ProductListItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "product_name": {"type": "string"},
                "product_photo": {"type": "array", "items": {"$ref": "#/definitions/catalog.PhotoResponse"}},
                "price": {"type": "string", "example": "199.90"},
                "average_rating": {"type": "number", "example": 4.5}
            }
        },
        "catalog.ProductDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "product_name": {"type": "string"},
                "category": {"$ref": "#/definitions/catalog.CategoryResponse"},
                "product_photo": {"type": "array", "items": {"$ref": "#/definitions/catalog.PhotoResponse"}},
                "price": {"type": "string", "example": "199.90"},
                "description": {"type": "string"},
                "product_video": {"type": "string"},
                "date": {"type": "string", "example": "2024-03-01"},
                "ratings": {"type": "array", "items": {"$ref": "#/definitions/catalog.RatingResponse"}},
                "active": {"type": "boolean"},
                "reviews": {"type": "array", "items": {"$ref": "#/definitions/catalog.ReviewResponse"}},
                "average_rating": {"type": "number", "example": 4.5}
            }
        },
        "cart.AddItemRequest": {
            "type": "object",
            "required": ["product_id"],
            "properties": {
                "product_id": {"type": "integer", "example": 3},
                "quantity": {"type": "integer", "minimum": 1, "example": 2}
            }
        },
        "cart.UpdateItemRequest": {
            "type": "object",
            "required": ["quantity"],
            "properties": {
                "quantity": {"type": "integer", "minimum": 1, "example": 4}
            }
        },
        "cart.ItemResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "product": {"$ref": "#/definitions/catalog.ProductListItem"},
                "quantity": {"type": "integer"},
                "get_total_price": {"type": "string", "example": "399.80"}
            }
        },
        "cart.CartResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/cart.ItemResponse"}},
                "total_price": {"type": "string", "example": "399.80"}
            }
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
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Online Store API",
	Description:      "Catalog browsing, ratings and reviews, shopping cart and JWT authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
