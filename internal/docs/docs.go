// Package docs registra la especificación OpenAPI del server de desarrollo
// para que http-swagger la sirva en /swagger/doc.json.
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
        "/reminders/today": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reminders"],
                "summary": "Recordatorios de hoy",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/reminderList"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}}
                }
            }
        },
        "/reminders/{reminderID}/complete": {
            "post": {
                "produces": ["application/json"],
                "tags": ["reminders"],
                "summary": "Completar recordatorio",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "ID del recordatorio", "name": "reminderID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/reminderItem"}},
                    "404": {"description": "reminder not found", "schema": {"type": "string"}},
                    "409": {"description": "reminder is archived", "schema": {"type": "string"}}
                }
            }
        },
        "/reminders/{reminderID}": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reminders"],
                "summary": "Cambiar status de un recordatorio",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "ID del recordatorio", "name": "reminderID", "in": "path", "required": true},
                    {"description": "Nuevo status", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/updateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/reminderItem"}},
                    "400": {"description": "invalid json / status inválido", "schema": {"type": "string"}},
                    "404": {"description": "reminder not found", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/{petID}/reminders": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reminders"],
                "summary": "Crear recordatorio para una mascota",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"description": "Datos del recordatorio", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/createReminderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/reminderItem"}},
                    "400": {"description": "invalid json / reglas de negocio", "schema": {"type": "string"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}}
                }
            }
        },
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Directorio de mascotas del usuario",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/petList"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Registrar mascota",
                "parameters": [
                    {"type": "string", "description": "Solo en modo dev", "name": "X-Debug-User-ID", "in": "header"},
                    {"description": "Datos de la mascota", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/createPetRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/petItem"}},
                    "400": {"description": "invalid json / reglas de negocio", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "reminder": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "petId": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "done", "completed", "archived"]},
                "scheduledAt": {"type": "string"},
                "dueAt": {"type": "string"},
                "snoozeUntil": {"type": "string"},
                "priority": {"type": "string", "enum": ["low", "medium", "high", "urgent"]},
                "tags": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string"}
            }
        },
        "reminderItem": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/reminder"}}
        },
        "reminderList": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/reminder"}}}
        },
        "updateStatusRequest": {
            "type": "object",
            "properties": {"status": {"type": "string", "enum": ["pending", "done", "completed", "archived"]}}
        },
        "createReminderRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "scheduledAt": {"type": "string"},
                "dueAt": {"type": "string"},
                "priority": {"type": "string", "enum": ["low", "medium", "high", "urgent"]},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "pet": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "species": {"type": "string", "enum": ["dog", "cat", "other"]},
                "birthDate": {"type": "string"},
                "breed": {"type": "string"},
                "isPrimary": {"type": "boolean"}
            }
        },
        "petItem": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/pet"}}
        },
        "petList": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/pet"}}}
        },
        "createPetRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "species": {"type": "string", "enum": ["dog", "cat", "other"]},
                "breed": {"type": "string"},
                "birthDate": {"type": "string"},
                "isPrimary": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo contiene la metadata exportada del documento OpenAPI.
var SwaggerInfo = &swag.Spec{
	Version:          "0.1",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "pet-care-tasks dev API",
	Description:      "Server de desarrollo con el contrato de recordatorios y mascotas que consume el cliente.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
