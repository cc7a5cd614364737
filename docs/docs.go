// Package docs registers the OpenAPI document served under /swagger.
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
                "tags": ["auth"],
                "summary": "Create an account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/registerRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/user"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/activities": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["activities"],
                "summary": "List activity records, newest first",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "enum": ["workout", "checkin", "meal"], "name": "kind", "in": "query"},
                    {"type": "string", "format": "date", "name": "from", "in": "query"},
                    {"type": "string", "format": "date", "name": "to", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/activity"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["activities"],
                "summary": "Record a workout, gym check-in or meal",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/logActivityRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/activity"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/activities/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["activities"],
                "summary": "Delete an activity record",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/commitments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["commitments"],
                "summary": "List active commitments",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/commitment"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["commitments"],
                "summary": "Declare a weekly goal",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/createCommitmentRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/commitment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/commitments/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["commitments"],
                "summary": "Deactivate a commitment",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}, "409": {"description": "Already inactive"}}
            }
        },
        "/commitments/progress": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["commitments"],
                "summary": "Week-by-week progress of every active commitment",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "format": "date", "name": "date", "in": "query"},
                    {"type": "string", "name": "tz", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/progressResponse"}}}
            }
        },
        "/streaks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["streaks"],
                "summary": "Current and longest daily streaks",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "enum": ["workout", "checkin", "meal"], "name": "kind", "in": "query"},
                    {"type": "string", "format": "date", "name": "date", "in": "query"},
                    {"type": "string", "name": "tz", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Weekly counts, streaks, commitment progress, achievements and level",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "format": "date", "name": "date", "in": "query"},
                    {"type": "string", "name": "tz", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/energy/estimate": {
            "post": {
                "tags": ["energy"],
                "summary": "Basal and total daily energy expenditure",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "profile", "required": true, "schema": {"$ref": "#/definitions/energyProfile"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/energyEstimate"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        }
    },
    "definitions": {
        "error": {"type": "object", "properties": {"error": {"type": "string"}}},
        "registerRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string", "minLength": 8}, "timezone": {"type": "string", "example": "Europe/Rome"}}
        },
        "loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "user": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "email": {"type": "string"}, "timezone": {"type": "string"}}
        },
        "loginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/user"}}
        },
        "logActivityRequest": {
            "type": "object",
            "required": ["kind"],
            "properties": {
                "kind": {"type": "string", "enum": ["workout", "checkin", "meal"]},
                "date": {"type": "string", "format": "date"},
                "timezone": {"type": "string"},
                "notes": {"type": "string", "maxLength": 500}
            }
        },
        "activity": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "notes": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "createCommitmentRequest": {
            "type": "object",
            "required": ["kind", "target_per_week", "duration_weeks"],
            "properties": {
                "kind": {"type": "string", "enum": ["workout", "checkin", "meal"]},
                "target_per_week": {"type": "integer", "minimum": 1, "maximum": 50},
                "duration_weeks": {"type": "integer", "minimum": 1, "maximum": 52},
                "start_date": {"type": "string", "format": "date"}
            }
        },
        "commitment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string"},
                "target_per_week": {"type": "integer"},
                "duration_weeks": {"type": "integer"},
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"},
                "active": {"type": "boolean"}
            }
        },
        "commitmentProgress": {
            "type": "object",
            "properties": {
                "commitment_id": {"type": "string"},
                "kind": {"type": "string"},
                "target_per_week": {"type": "integer"},
                "current_week": {"type": "integer"},
                "total_weeks": {"type": "integer"},
                "this_week_count": {"type": "integer"},
                "weekly_results": {"type": "array", "items": {"type": "boolean"}},
                "overall_progress": {"type": "integer", "minimum": 0, "maximum": 100}
            }
        },
        "progressResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "format": "date"},
                "commitments": {"type": "array", "items": {"$ref": "#/definitions/commitmentProgress"}}
            }
        },
        "energyProfile": {
            "type": "object",
            "required": ["sex", "weight_kg", "height_cm", "age_years"],
            "properties": {
                "sex": {"type": "string", "enum": ["male", "female"]},
                "weight_kg": {"type": "number"},
                "height_cm": {"type": "number"},
                "age_years": {"type": "integer"},
                "activity_level": {"type": "string", "enum": ["sedentary", "light", "moderate", "active", "very_active"]}
            }
        },
        "energyEstimate": {
            "type": "object",
            "properties": {"bmr_kcal": {"type": "integer"}, "tdee_kcal": {"type": "integer"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Fit API",
	Description:      "Fitness commitments, activity logging, streaks and weekly progress.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
