// Package docs registers the swagger document served under /swagger/.
// Regenerate with: swag init -g server.go -d internal/adapters/in/http -o internal/adapters/in/http/docs
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
        "/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders, newest first",
                "parameters": [
                    {"type": "integer", "default": 0, "description": "Zero-based page", "name": "page", "in": "query"},
                    {"maximum": 100, "type": "integer", "default": 10, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Owner filter", "name": "userId", "in": "query"},
                    {"type": "string", "description": "Status filter", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.OrderListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Create an order with its items",
                "parameters": [
                    {"description": "Order", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.OrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/orders/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get an order with its items",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.OrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Update an order, optionally replacing its items",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true},
                    {"description": "Changes", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.UpdateOrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.OrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Delete an order and its items",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.DeleteResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/orders/{id}/status": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Move an order to another status",
                "parameters": [
                    {"type": "integer", "description": "Order ID", "name": "id", "in": "path", "required": true},
                    {"description": "New status", "name": "status", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.OrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.ItemRequest": {
            "type": "object",
            "properties": {
                "productId": {"type": "integer"},
                "productName": {"type": "string"},
                "quantity": {"type": "integer", "default": 1},
                "unitPrice": {"type": "string", "example": "10.00"},
                "notes": {"type": "string"}
            }
        },
        "http.CreateOrderRequest": {
            "type": "object",
            "properties": {
                "userId": {"type": "integer"},
                "totalAmount": {"type": "string", "example": "45.50"},
                "shippingAddress": {"type": "string"},
                "paymentMethod": {"type": "string", "enum": ["CREDIT_CARD", "PAYPAL", "CASH"]},
                "paymentStatus": {"type": "string", "enum": ["PENDING", "PAID", "FAILED"]},
                "deliveryNotes": {"type": "string"},
                "estimatedDeliveryTime": {"type": "string", "format": "date-time"},
                "driverId": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/http.ItemRequest"}}
            }
        },
        "http.UpdateOrderRequest": {
            "type": "object",
            "properties": {
                "userId": {"type": "integer"},
                "totalAmount": {"type": "string"},
                "status": {"type": "string", "enum": ["CREATED", "PENDING", "PROCESSING", "SHIPPED", "DELIVERED", "CANCELLED"]},
                "paymentMethod": {"type": "string", "enum": ["CREDIT_CARD", "PAYPAL", "CASH"]},
                "paymentStatus": {"type": "string", "enum": ["PENDING", "PAID", "FAILED"]},
                "shippingAddress": {"type": "string"},
                "deliveryNotes": {"type": "string"},
                "estimatedDeliveryTime": {"type": "string", "format": "date-time"},
                "driverId": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/http.ItemRequest"}}
            }
        },
        "http.UpdateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["CREATED", "PENDING", "PROCESSING", "SHIPPED", "DELIVERED", "CANCELLED"]}
            }
        },
        "http.ItemResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "orderId": {"type": "integer"},
                "productId": {"type": "integer"},
                "productName": {"type": "string"},
                "quantity": {"type": "integer"},
                "unitPrice": {"type": "string"},
                "totalPrice": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "http.OrderResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "userId": {"type": "integer"},
                "totalAmount": {"type": "string"},
                "status": {"type": "string"},
                "paymentMethod": {"type": "string"},
                "paymentStatus": {"type": "string"},
                "shippingAddress": {"type": "string"},
                "deliveryNotes": {"type": "string"},
                "estimatedDeliveryTime": {"type": "string", "format": "date-time"},
                "actualDeliveryTime": {"type": "string", "format": "date-time"},
                "driverId": {"type": "integer"},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/http.ItemResponse"}}
            }
        },
        "http.OrderListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/http.OrderResponse"}},
                "totalCount": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "http.DeleteResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "cause": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Order Fulfillment API",
	Description:      "Creates, updates and tears down orders together with their line items.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
