// Package docs registra la especificación OpenAPI para /swagger.
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
                "tags": ["health"],
                "summary": "Liveness",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "ok"}, "503": {"description": "unavailable"}}
            }
        },
        "/login": {
            "post": {
                "tags": ["accounts"],
                "summary": "Iniciar sesión",
                "description": "Valida usuario y clave; rota la cookie de sesión. Cualquier fallo redirige a /login con el aviso \"invalid username or password\".",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {"303": {"description": "redirect a / o a /login"}}
            }
        },
        "/logout": {
            "post": {
                "tags": ["accounts"],
                "summary": "Cerrar sesión",
                "responses": {"303": {"description": "redirect a /"}}
            }
        },
        "/public/breeds": {
            "get": {
                "tags": ["pages"],
                "summary": "Catálogo público de razas",
                "produces": ["application/json"],
                "responses": {"200": {"description": "vista public/breeds"}}
            }
        },
        "/{kind}": {
            "get": {
                "tags": ["records"],
                "summary": "Listar y buscar registros",
                "description": "kind: clients, pets, appointments, veterinarians, remedies, breeds. Páginas de 5; una página fuera de rango se ajusta.",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "vista kind/list"}, "303": {"description": "sin sesión o sin permiso"}}
            }
        },
        "/register/{noun}": {
            "post": {
                "tags": ["records"],
                "summary": "Registrar un registro",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [{"type": "string", "name": "noun", "in": "path", "required": true}],
                "responses": {"303": {"description": "redirect a /register"}, "422": {"description": "errores por campo"}}
            }
        },
        "/{kind}/{id}/edit": {
            "post": {
                "tags": ["records"],
                "summary": "Editar un registro",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"type": "string", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"303": {"description": "redirect al listado"}, "422": {"description": "errores por campo"}}
            }
        },
        "/{kind}/{id}/delete": {
            "get": {
                "tags": ["records"],
                "summary": "Confirmar borrado (no borra)",
                "parameters": [
                    {"type": "string", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "vista kind/confirm-delete"}}
            },
            "post": {
                "tags": ["records"],
                "summary": "Borrar un registro",
                "parameters": [
                    {"type": "string", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"303": {"description": "redirect al listado"}}
            }
        },
        "/users": {
            "get": {
                "tags": ["users"],
                "summary": "Listar usuarios (solo administrador)",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"}
                ],
                "responses": {"200": {"description": "vista users/list"}, "303": {"description": "sin permiso"}}
            }
        },
        "/users/new": {
            "post": {
                "tags": ["users"],
                "summary": "Crear usuario",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "password", "in": "formData", "required": true},
                    {"type": "string", "name": "confirm_password", "in": "formData", "required": true},
                    {"type": "string", "name": "email", "in": "formData", "required": true},
                    {"type": "string", "name": "full_name", "in": "formData", "required": true},
                    {"type": "string", "name": "role", "in": "formData", "required": true},
                    {"type": "string", "name": "phone", "in": "formData"}
                ],
                "responses": {"303": {"description": "redirect a /users"}, "422": {"description": "regla incumplida (aviso)"}}
            }
        },
        "/users/{id}/delete": {
            "post": {
                "tags": ["users"],
                "summary": "Borrar usuario (nunca el de la sesión)",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"303": {"description": "redirect a /users"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "vet-clinic API",
	Description:      "Fichas de clientes, mascotas, citas, veterinarios, razas y remedios con control de acceso por rol.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
