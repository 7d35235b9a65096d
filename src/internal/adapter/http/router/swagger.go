package router

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

func registerSwaggerRoutes(router *mux.Router) {
	router.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	}).Methods(http.MethodGet)

	router.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	}).Methods(http.MethodGet)

	router.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	}).Methods(http.MethodGet)
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Minibanco API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {"title": "Minibanco API", "version": "1.0.0"},
  "paths": {
    "/health": {"get": {"tags": ["system"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
    "/auth/login": {
      "post": {
        "tags": ["auth"],
        "summary": "Log in and obtain a bearer token",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/LoginRequest"}}}
        },
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/auth/register": {
      "post": {
        "tags": ["auth"],
        "summary": "Register a client and obtain a bearer token",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/RegisterRequest"}}}
        },
        "responses": {
          "201": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/accounts": {
      "post": {
        "tags": ["accounts"],
        "summary": "Open an account",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/OpenAccountRequest"}}}
        },
        "responses": {
          "201": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/my-accounts": {
      "get": {
        "tags": ["accounts"],
        "summary": "List the caller's accounts",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/accounts/{id}/balance": {
      "get": {
        "tags": ["accounts"],
        "summary": "Query balance (recorded as a QUERY row)",
        "security": [{"BearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/accounts/{id}/history": {
      "get": {
        "tags": ["accounts"],
        "summary": "Transaction history, newest first",
        "security": [{"BearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/accounts/{id}/deactivate": {
      "post": {
        "tags": ["accounts"],
        "summary": "Deactivate an account (admin)",
        "security": [{"BearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/transactions/deposit": {
      "post": {
        "tags": ["transactions"],
        "summary": "Deposit",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/MovementRequest"}}}
        },
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/transactions/withdraw": {
      "post": {
        "tags": ["transactions"],
        "summary": "Withdraw",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/MovementRequest"}}}
        },
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/transactions/transfer": {
      "post": {
        "tags": ["transactions"],
        "summary": "Transfer between accounts",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/TransferRequest"}}}
        },
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/admin/accounts": {
      "get": {
        "tags": ["admin"],
        "summary": "List accounts",
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"name": "skip", "in": "query", "schema": {"type": "integer", "minimum": 0}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 500}}
        ],
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/admin/accounts/{id}": {
      "get": {
        "tags": ["admin"],
        "summary": "Get account",
        "security": [{"BearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      },
      "delete": {
        "tags": ["admin"],
        "summary": "Delete account and its transactions",
        "security": [{"BearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/admin/clients": {
      "get": {
        "tags": ["admin"],
        "summary": "List clients",
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"name": "skip", "in": "query", "schema": {"type": "integer", "minimum": 0}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 500}}
        ],
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/admin/clients/{id}": {
      "delete": {
        "tags": ["admin"],
        "summary": "Delete client with accounts, transactions and user",
        "security": [{"BearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/admin/users/{id}": {
      "delete": {
        "tags": ["admin"],
        "summary": "Delete user and owned client",
        "security": [{"BearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/admin/transactions": {
      "get": {
        "tags": ["admin"],
        "summary": "List transactions",
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"name": "skip", "in": "query", "schema": {"type": "integer", "minimum": 0}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 500}}
        ],
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    },
    "/admin/transactions/{id}": {
      "get": {
        "tags": ["admin"],
        "summary": "Get transaction",
        "security": [{"BearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      },
      "put": {
        "tags": ["admin"],
        "summary": "Update transaction description",
        "security": [{"BearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/UpdateTransactionRequest"}}}
        },
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      },
      "delete": {
        "tags": ["admin"],
        "summary": "Delete transaction",
        "security": [{"BearerAuth": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "integer", "format": "int64"}}],
        "responses": {
          "200": {
            "description": "Success",
            "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
          },
          "400": {"$ref": "#/components/responses/ValidationFailed"},
          "401": {"$ref": "#/components/responses/Unauthorized"},
          "403": {"$ref": "#/components/responses/PermissionDenied"},
          "404": {"$ref": "#/components/responses/NotFound"},
          "422": {"$ref": "#/components/responses/InsufficientFunds"},
          "500": {"$ref": "#/components/responses/InternalError"}
        }
      }
    }
  },
  "components": {
    "securitySchemes": {"BearerAuth": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}},
    "schemas": {
      "Envelope": {
        "type": "object",
        "properties": {
          "success": {"type": "boolean"},
          "message": {"type": "string"},
          "data": {},
          "errors": {"type": "array", "items": {"type": "string"}}
        }
      },
      "LoginRequest": {
        "type": "object",
        "required": ["username", "password"],
        "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
      },
      "RegisterRequest": {
        "type": "object",
        "required": ["username", "password", "fullName", "email", "identificationNumber"],
        "properties": {
          "username": {"type": "string"},
          "password": {"type": "string", "minLength": 6},
          "fullName": {"type": "string"},
          "email": {"type": "string", "format": "email"},
          "identificationNumber": {"type": "string"},
          "identificationType": {"type": "string", "default": "CC"},
          "phone": {"type": "string"}
        }
      },
      "OpenAccountRequest": {
        "type": "object",
        "required": ["kind"],
        "properties": {
          "clientId": {"type": "integer", "format": "int64", "description": "Required for administrators"},
          "kind": {"type": "string", "enum": ["SAVINGS", "CHECKING", "TERM_DEPOSIT"]},
          "initialBalance": {"type": "string", "example": "1500000.00"}
        }
      },
      "MovementRequest": {
        "type": "object",
        "required": ["accountId", "amount"],
        "properties": {
          "accountId": {"type": "integer", "format": "int64"},
          "amount": {"type": "string", "example": "1500000.00"},
          "description": {"type": "string"}
        }
      },
      "TransferRequest": {
        "type": "object",
        "required": ["sourceAccountId", "destinationAccountId", "amount"],
        "properties": {
          "sourceAccountId": {"type": "integer", "format": "int64"},
          "destinationAccountId": {"type": "integer", "format": "int64"},
          "amount": {"type": "string", "example": "1500000.00"},
          "description": {"type": "string"}
        }
      },
      "UpdateTransactionRequest": {
        "type": "object",
        "required": ["description"],
        "properties": {"description": {"type": "string", "maxLength": 255}}
      }
    },
    "responses": {
      "ValidationFailed": {
        "description": "Validation failed or invalid account state",
        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
      },
      "Unauthorized": {
        "description": "Missing or invalid token",
        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
      },
      "PermissionDenied": {
        "description": "Permission denied",
        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
      },
      "NotFound": {
        "description": "Record not found",
        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
      },
      "InsufficientFunds": {
        "description": "Insufficient funds",
        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
      },
      "InternalError": {
        "description": "Internal error",
        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Envelope"}}}
      }
    }
  }
}`
