// Package docs registra la spec Swagger del servicio.
// Mantenida a mano por ahora; regenerable con swag init cuando haga falta.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Estado de sesión del request actual",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Perfil del usuario autenticado",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Actualizar perfil propio",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/doctors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["doctors"],
                "summary": "Listar médicos (filtro opcional por especialidad)",
                "parameters": [
                    {"type": "string", "name": "specialty", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/doctors/{doctorID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["doctors"],
                "summary": "Obtener un médico",
                "parameters": [
                    {"type": "string", "name": "doctorID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/specialties": {
            "get": {
                "produces": ["application/json"],
                "tags": ["specialties"],
                "summary": "Listar especialidades",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/appointments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Citas del paciente autenticado",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Reservar una cita",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Slot ocupado"}
                }
            }
        },
        "/appointments/availability": {
            "get": {
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Horarios libres de un médico en una fecha",
                "parameters": [
                    {"type": "string", "name": "doctorId", "in": "query", "required": true},
                    {"type": "string", "name": "date", "in": "query", "required": true},
                    {"type": "string", "name": "exclude", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/appointments/watch": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["appointments"],
                "summary": "Stream SSE con el listado de citas en vivo",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/appointments/{appointmentID}": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["appointments"],
                "summary": "Reprogramar una cita pendiente",
                "parameters": [
                    {"type": "string", "name": "appointmentID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Slot ocupado o estado inválido"}
                }
            },
            "delete": {
                "tags": ["appointments"],
                "summary": "Cancelar una cita",
                "parameters": [
                    {"type": "string", "name": "appointmentID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/admin/appointments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Todas las citas (vista admin)",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/admin/appointments/{appointmentID}/confirm": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Confirmar una cita",
                "parameters": [
                    {"type": "string", "name": "appointmentID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/admin/doctors": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Registrar un médico",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/admin/doctors/{doctorID}": {
            "delete": {
                "tags": ["admin"],
                "summary": "Eliminar un médico sin citas",
                "parameters": [
                    {"type": "string", "name": "doctorID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Tiene citas asociadas"}
                }
            }
        },
        "/admin/specialties": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["admin"],
                "summary": "Registrar una especialidad",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/admin/specialties/{specialtyID}": {
            "delete": {
                "tags": ["admin"],
                "summary": "Eliminar una especialidad sin citas",
                "parameters": [
                    {"type": "string", "name": "specialtyID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Tiene citas asociadas"}
                }
            }
        },
        "/admin/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Listar usuarios (filtros por rol y texto)",
                "parameters": [
                    {"type": "string", "name": "role", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/users/{uid}/role": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Alternar rol patient/admin",
                "parameters": [
                    {"type": "string", "name": "uid", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
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
	Title:            "Clinic Appointments API",
	Description:      "API de agenda de citas médicas: pacientes, médicos, especialidades y confirmaciones.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
