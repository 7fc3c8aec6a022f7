// Package docs registra el documento OpenAPI (swagger 2.0) que sirve /swagger/*.
// Se mantiene a mano, en el formato de swag, junto con las anotaciones de los handlers.
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
		"/calendar": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"calendar"
				],
				"summary": "Crear entrada de calendario",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"success": {
									"type": "boolean"
								},
								"data": {
									"$ref": "#/definitions/calendar.entryResponse"
								},
								"count": {
									"type": "integer"
								}
							}
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/calendar.errorEnvelope"
						}
					},
					"500": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/calendar.errorEnvelope"
						}
					}
				},
				"parameters": [
					{
						"description": "Datos de la entrada",
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/calendar.createEntryRequest"
						}
					}
				]
			},
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"calendar"
				],
				"summary": "Listar entradas de calendario",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"success": {
									"type": "boolean"
								},
								"data": {
									"type": "array",
									"items": {
										"$ref": "#/definitions/calendar.entryResponse"
									}
								},
								"count": {
									"type": "integer"
								}
							}
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/calendar.errorEnvelope"
						}
					},
					"500": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/calendar.errorEnvelope"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "userId",
						"in": "query"
					},
					{
						"type": "string",
						"name": "type",
						"in": "query",
						"enum": [
							"availability",
							"request"
						]
					},
					{
						"type": "string",
						"name": "status",
						"in": "query"
					},
					{
						"type": "string",
						"description": "start_date >=",
						"name": "startDate",
						"in": "query"
					},
					{
						"type": "string",
						"description": "end_date <=",
						"name": "endDate",
						"in": "query"
					},
					{
						"type": "integer",
						"name": "neighborDistanceRange",
						"in": "query"
					},
					{
						"type": "integer",
						"name": "skip",
						"in": "query"
					},
					{
						"type": "integer",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/calendar/{entryID}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"calendar"
				],
				"summary": "Obtener entrada por ID",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"success": {
									"type": "boolean"
								},
								"data": {
									"$ref": "#/definitions/calendar.entryResponse"
								},
								"count": {
									"type": "integer"
								}
							}
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/calendar.errorEnvelope"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "ID de la entrada",
						"name": "entryID",
						"in": "path",
						"required": true
					}
				]
			},
			"put": {
				"produces": [
					"application/json"
				],
				"tags": [
					"calendar"
				],
				"summary": "Actualizar entrada (parcial)",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"success": {
									"type": "boolean"
								},
								"data": {
									"$ref": "#/definitions/calendar.entryResponse"
								},
								"count": {
									"type": "integer"
								}
							}
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/calendar.errorEnvelope"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/calendar.errorEnvelope"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "ID de la entrada",
						"name": "entryID",
						"in": "path",
						"required": true
					},
					{
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/calendar.updateEntryRequest"
						}
					}
				]
			},
			"delete": {
				"produces": [
					"application/json"
				],
				"tags": [
					"calendar"
				],
				"summary": "Borrar entrada (físico)",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"success": {
									"type": "boolean"
								},
								"data": {
									"$ref": "#/definitions/calendar.deleteResult"
								},
								"count": {
									"type": "integer"
								}
							}
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "ID de la entrada",
						"name": "entryID",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/calendar/{entryID}/soft-delete": {
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"calendar"
				],
				"summary": "Borrado lógico",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"success": {
									"type": "boolean"
								},
								"data": {
									"$ref": "#/definitions/calendar.deleteResult"
								},
								"count": {
									"type": "integer"
								}
							}
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/calendar.errorEnvelope"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "ID de la entrada",
						"name": "entryID",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/calendar/matching/{requestID}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"calendar"
				],
				"summary": "Disponibilidades compatibles con una solicitud",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"success": {
									"type": "boolean"
								},
								"data": {
									"type": "array",
									"items": {
										"$ref": "#/definitions/calendar.entryResponse"
									}
								},
								"count": {
									"type": "integer"
								}
							}
						}
					},
					"400": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/calendar.errorEnvelope"
						}
					},
					"404": {
						"description": "error",
						"schema": {
							"$ref": "#/definitions/calendar.errorEnvelope"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "ID de la solicitud",
						"name": "requestID",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/calendar/stats/overview": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"calendar"
				],
				"summary": "Estadísticas del calendario",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"success": {
									"type": "boolean"
								},
								"data": {
									"$ref": "#/definitions/calendar.statsResponse"
								},
								"count": {
									"type": "integer"
								}
							}
						}
					}
				}
			}
		},
		"/calendar/requests/all": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"calendar"
				],
				"summary": "Listar solicitudes",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"success": {
									"type": "boolean"
								},
								"data": {
									"type": "array",
									"items": {
										"$ref": "#/definitions/calendar.entryResponse"
									}
								},
								"count": {
									"type": "integer"
								}
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/calendar.errorEnvelope"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "userId",
						"in": "query"
					},
					{
						"type": "string",
						"name": "status",
						"in": "query"
					},
					{
						"type": "string",
						"description": "start_date >=",
						"name": "startDate",
						"in": "query"
					},
					{
						"type": "string",
						"description": "end_date <=",
						"name": "endDate",
						"in": "query"
					},
					{
						"type": "integer",
						"name": "neighborDistanceRange",
						"in": "query"
					},
					{
						"type": "integer",
						"name": "skip",
						"in": "query"
					},
					{
						"type": "integer",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/calendar/availability/all": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"calendar"
				],
				"summary": "Listar disponibilidades",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"success": {
									"type": "boolean"
								},
								"data": {
									"type": "array",
									"items": {
										"$ref": "#/definitions/calendar.entryResponse"
									}
								},
								"count": {
									"type": "integer"
								}
							}
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/calendar.errorEnvelope"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "userId",
						"in": "query"
					},
					{
						"type": "string",
						"name": "status",
						"in": "query"
					},
					{
						"type": "string",
						"description": "start_date >=",
						"name": "startDate",
						"in": "query"
					},
					{
						"type": "string",
						"description": "end_date <=",
						"name": "endDate",
						"in": "query"
					},
					{
						"type": "integer",
						"name": "neighborDistanceRange",
						"in": "query"
					},
					{
						"type": "integer",
						"name": "skip",
						"in": "query"
					},
					{
						"type": "integer",
						"name": "limit",
						"in": "query"
					}
				]
			}
		},
		"/calendar/user/{userID}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"calendar"
				],
				"summary": "Listar entradas de un usuario",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "object",
							"properties": {
								"success": {
									"type": "boolean"
								},
								"data": {
									"type": "array",
									"items": {
										"$ref": "#/definitions/calendar.entryResponse"
									}
								},
								"count": {
									"type": "integer"
								}
							}
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "ID del usuario",
						"name": "userID",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/calendar/user/{userID}/ics": {
			"get": {
				"produces": [
					"text/calendar"
				],
				"tags": [
					"calendar"
				],
				"summary": "Exportar calendario en formato iCalendar",
				"responses": {
					"200": {
						"description": "VCALENDAR",
						"schema": {
							"type": "string"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "ID del usuario",
						"name": "userID",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/pets": {
			"post": {
				"produces": [
					"application/json"
				],
				"tags": [
					"pets"
				],
				"summary": "Registrar mascota",
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/pets.petResponse"
						}
					},
					"400": {
						"description": "invalid input",
						"schema": {
							"type": "string"
						}
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"type": "string"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Dev: user id (si no hay verifier)",
						"name": "X-Debug-User-ID",
						"in": "header"
					},
					{
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/pets.createPetRequest"
						}
					}
				]
			},
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"pets"
				],
				"summary": "Listar mis mascotas",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/pets.petResponse"
							}
						}
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"type": "string"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Dev: user id (si no hay verifier)",
						"name": "X-Debug-User-ID",
						"in": "header"
					}
				]
			}
		},
		"/pets/{petID}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"pets"
				],
				"summary": "Obtener mascota",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/pets.petResponse"
						}
					},
					"401": {
						"description": "unauthorized",
						"schema": {
							"type": "string"
						}
					},
					"404": {
						"description": "pet not found",
						"schema": {
							"type": "string"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "ID de la mascota",
						"name": "petID",
						"in": "path",
						"required": true
					}
				]
			},
			"patch": {
				"produces": [
					"application/json"
				],
				"tags": [
					"pets"
				],
				"summary": "Actualizar mascota (parcial)",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/pets.petResponse"
						}
					},
					"400": {
						"description": "invalid input",
						"schema": {
							"type": "string"
						}
					},
					"403": {
						"description": "forbidden",
						"schema": {
							"type": "string"
						}
					},
					"404": {
						"description": "pet not found",
						"schema": {
							"type": "string"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "ID de la mascota",
						"name": "petID",
						"in": "path",
						"required": true
					},
					{
						"name": "payload",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/pets.updatePetRequest"
						}
					}
				]
			}
		}
	},
	"definitions": {
		"calendar.PetSummary": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"petType": {
					"type": "string"
				},
				"breed": {
					"type": "string"
				}
			}
		},
		"calendar.entryResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"userId": {
					"type": "string"
				},
				"type": {
					"type": "string",
					"enum": [
						"availability",
						"request"
					]
				},
				"startDate": {
					"type": "string",
					"format": "date-time"
				},
				"endDate": {
					"type": "string",
					"format": "date-time"
				},
				"status": {
					"type": "string",
					"enum": [
						"available",
						"requested",
						"booked",
						"cancelled",
						"in_review"
					]
				},
				"pets": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"petInfo": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/calendar.PetSummary"
					}
				},
				"reason": {
					"type": "string"
				},
				"neighborDistanceRange": {
					"type": "integer",
					"minimum": 1,
					"maximum": 50
				},
				"isDeleted": {
					"type": "boolean"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"calendar.createEntryRequest": {
			"type": "object",
			"properties": {
				"userId": {
					"type": "string"
				},
				"type": {
					"type": "string",
					"enum": [
						"availability",
						"request"
					]
				},
				"startDate": {
					"type": "string",
					"example": "2024-03-01"
				},
				"endDate": {
					"type": "string",
					"example": "2024-03-05"
				},
				"status": {
					"type": "string",
					"enum": [
						"available",
						"requested",
						"booked",
						"cancelled",
						"in_review"
					]
				},
				"pets": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"reason": {
					"type": "string"
				},
				"neighborDistanceRange": {
					"type": "integer",
					"minimum": 1,
					"maximum": 50
				}
			}
		},
		"calendar.updateEntryRequest": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string",
					"enum": [
						"availability",
						"request"
					]
				},
				"startDate": {
					"type": "string",
					"format": "date-time"
				},
				"endDate": {
					"type": "string",
					"format": "date-time"
				},
				"status": {
					"type": "string",
					"enum": [
						"available",
						"requested",
						"booked",
						"cancelled",
						"in_review"
					]
				},
				"pets": {
					"type": "array",
					"items": {
						"type": "string"
					}
				},
				"reason": {
					"type": "string"
				},
				"neighborDistanceRange": {
					"type": "integer",
					"minimum": 1,
					"maximum": 50
				}
			}
		},
		"calendar.deleteResult": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				},
				"deletedCount": {
					"type": "integer"
				}
			}
		},
		"calendar.statsResponse": {
			"type": "object",
			"properties": {
				"totalEntries": {
					"type": "integer"
				},
				"entriesByType": {
					"type": "object",
					"additionalProperties": {
						"type": "integer"
					}
				},
				"entriesByStatus": {
					"type": "object",
					"additionalProperties": {
						"type": "integer"
					}
				},
				"availabilityEntries": {
					"type": "integer"
				},
				"requestEntries": {
					"type": "integer"
				}
			}
		},
		"calendar.errorEnvelope": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"message": {
					"type": "array",
					"items": {
						"type": "string"
					}
				}
			}
		},
		"pets.ageDTO": {
			"type": "object",
			"properties": {
				"label": {
					"type": "string",
					"enum": [
						"Puppy",
						"Kitten",
						"Young",
						"Adult",
						"Senior"
					]
				},
				"months": {
					"type": "integer"
				}
			}
		},
		"pets.createPetRequest": {
			"type": "object",
			"properties": {
				"petType": {
					"type": "string"
				},
				"breed": {
					"type": "string"
				},
				"gender": {
					"type": "string",
					"enum": [
						"Male",
						"Female"
					]
				},
				"age": {
					"$ref": "#/definitions/pets.ageDTO"
				},
				"weightKg": {
					"type": "number"
				},
				"nutrition": {
					"type": "string"
				}
			}
		},
		"pets.updatePetRequest": {
			"type": "object",
			"properties": {
				"petType": {
					"type": "string"
				},
				"breed": {
					"type": "string"
				},
				"gender": {
					"type": "string"
				},
				"ageLabel": {
					"type": "string"
				},
				"ageMonths": {
					"type": "integer"
				},
				"weightKg": {
					"type": "number"
				},
				"nutrition": {
					"type": "string"
				}
			}
		},
		"pets.petResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"ownerUserId": {
					"type": "string"
				},
				"petType": {
					"type": "string"
				},
				"breed": {
					"type": "string"
				},
				"gender": {
					"type": "string"
				},
				"age": {
					"$ref": "#/definitions/pets.ageDTO"
				},
				"weightKg": {
					"type": "number"
				},
				"nutrition": {
					"type": "string"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
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
	Title:            "PackMates API",
	Description:      "Calendario de disponibilidades y solicitudes de cuidado de mascotas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
