// Package docs registra el documento OpenAPI que sirve /swagger.
// Se regenera con: swag init -g cmd/api/main.go -o internal/docs
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
        "/health": {"get": {"tags": ["ops"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}},
        "/session": {"get": {"tags": ["account"], "summary": "Estado de la sesión", "responses": {"200": {"description": "OK"}, "503": {"description": "Sesión no hidratada"}}}},
        "/auth/login": {"post": {"tags": ["account"], "summary": "Iniciar sesión", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials. Please try again."}, "422": {"description": "Errores por campo"}}}},
        "/auth/register": {"post": {"tags": ["account"], "summary": "Registrar usuario", "responses": {"201": {"description": "Created"}, "422": {"description": "Errores por campo"}, "502": {"description": "Registration failed. Please try again."}}}},
        "/auth/logout": {"post": {"tags": ["account"], "summary": "Cerrar sesión", "responses": {"204": {"description": "No Content"}}}},
        "/me/profile": {
            "get": {"tags": ["account"], "summary": "Ver perfil", "responses": {"200": {"description": "OK"}, "401": {"description": "Login requerido"}}},
            "put": {"tags": ["account"], "summary": "Actualizar perfil", "responses": {"200": {"description": "OK"}, "422": {"description": "Errores por campo"}}},
            "delete": {"tags": ["account"], "summary": "Eliminar cuenta", "responses": {"204": {"description": "No Content"}}}
        },
        "/animals": {"get": {"tags": ["animals"], "summary": "Listar animales", "parameters": [
            {"type": "string", "name": "search", "in": "query"},
            {"type": "string", "name": "species", "in": "query"},
            {"type": "string", "name": "status", "in": "query"}
        ], "responses": {"200": {"description": "OK"}}}},
        "/animals/{animalID}": {"get": {"tags": ["animals"], "summary": "Ver animal", "parameters": [{"type": "string", "name": "animalID", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/animals/reload": {"post": {"tags": ["animals"], "summary": "Recargar catálogo", "responses": {"200": {"description": "OK"}, "409": {"description": "Superseded"}, "502": {"description": "Failed to fetch animals"}}}},
        "/admin/animals": {"post": {"tags": ["animals"], "summary": "Agregar animal", "responses": {"201": {"description": "Created"}, "422": {"description": "Errores por campo"}}}},
        "/admin/animals/{animalID}": {
            "patch": {"tags": ["animals"], "summary": "Editar animal", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["animals"], "summary": "Quitar animal", "responses": {"204": {"description": "No Content"}}}
        },
        "/adoptions": {"post": {"tags": ["adoptions"], "summary": "Enviar solicitud de adopción", "responses": {"201": {"description": "Created"}, "422": {"description": "Errores por campo"}}}},
        "/admin/adoptions": {"get": {"tags": ["adoptions"], "summary": "Listar solicitudes", "responses": {"200": {"description": "OK"}}}},
        "/admin/adoptions/{applicationID}": {"get": {"tags": ["adoptions"], "summary": "Ver solicitud", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/admin/adoptions/{applicationID}/review": {"post": {"tags": ["adoptions"], "summary": "Pasar a revisión", "responses": {"200": {"description": "OK"}, "409": {"description": "Estado inválido"}}}},
        "/admin/adoptions/{applicationID}/approve": {"post": {"tags": ["adoptions"], "summary": "Aprobar", "responses": {"200": {"description": "OK"}, "409": {"description": "Estado inválido"}}}},
        "/admin/adoptions/{applicationID}/reject": {"post": {"tags": ["adoptions"], "summary": "Rechazar", "responses": {"200": {"description": "OK"}, "409": {"description": "Estado inválido"}}}},
        "/emergencies": {"post": {"tags": ["emergencies"], "summary": "Reportar emergencia", "responses": {"201": {"description": "Created"}, "422": {"description": "Errores por campo"}, "502": {"description": "Failed to report emergency. Please try again."}}}},
        "/admin/emergencies": {"get": {"tags": ["emergencies"], "summary": "Listar emergencias", "responses": {"200": {"description": "OK"}}}},
        "/admin/emergencies/{incidentID}": {"patch": {"tags": ["emergencies"], "summary": "Cambiar estado", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/donations": {"post": {"tags": ["donations"], "summary": "Registrar donación", "responses": {"201": {"description": "Created"}, "422": {"description": "Errores por campo"}}}},
        "/admin/donations": {"get": {"tags": ["donations"], "summary": "Listar donaciones", "responses": {"200": {"description": "OK"}}}},
        "/admin/dashboard": {"get": {"tags": ["dashboard"], "summary": "Resumen del panel", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "NGO Animal Rescue API",
	Description:      "Catálogo de animales, sesión, adopciones, emergencias y donaciones.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
