package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Portal Enrollment API",
        "description": "Enrollment and user-lifecycle API for the school portal",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Operator authentication"},
        {"name": "Catalog", "description": "Grades, sections and subjects reference data"},
        {"name": "Enrollment", "description": "Student and teacher creation"},
        {"name": "Users", "description": "User lifecycle and deletion"},
        {"name": "Exports", "description": "Impact reports and rosters"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Operator login",
                "responses": {
                    "200": {"description": "Access token issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/catalog/grades": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List active grades",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/catalog/sections": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List active sections",
                "parameters": [
                    {"name": "grade_id", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/catalog/subjects": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List active subjects",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/students": {
            "post": {
                "tags": ["Enrollment"],
                "summary": "Enroll a student with grade/section placement",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation failed"},
                    "409": {"description": "Duplicate email"}
                }
            }
        },
        "/teachers": {
            "post": {
                "tags": ["Enrollment"],
                "summary": "Create a teacher with subject and class assignments",
                "responses": {
                    "201": {"description": "Created; inspect assignments_failed"},
                    "400": {"description": "Validation failed"},
                    "409": {"description": "Duplicate email"}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user with profile",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Legacy verb-overloaded deletion (mode=soft|hard)",
                "parameters": [
                    {"name": "mode", "in": "query", "type": "string", "default": "soft"}
                ],
                "responses": {
                    "200": {"description": "Deactivated"},
                    "204": {"description": "Purged"},
                    "400": {"description": "Bad mode or missing confirmation"}
                }
            }
        },
        "/users/{id}/dependencies": {
            "get": {
                "tags": ["Users"],
                "summary": "Pre-deletion dependency summary",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/users/{id}/deactivate": {
            "post": {
                "tags": ["Users"],
                "summary": "Soft-delete a user",
                "responses": {"200": {"description": "Deactivated"}}
            }
        },
        "/users/{id}/reactivate": {
            "post": {
                "tags": ["Users"],
                "summary": "Reactivate a soft-deleted user",
                "responses": {"200": {"description": "Reactivated"}}
            }
        },
        "/users/{id}/purge": {
            "post": {
                "tags": ["Users"],
                "summary": "Hard-delete a user after confirmation",
                "responses": {
                    "204": {"description": "Purged"},
                    "400": {"description": "Missing DELETE confirmation"}
                }
            }
        },
        "/teachers/{id}/reassign-classes": {
            "post": {
                "tags": ["Users"],
                "summary": "Reassign class rows to a replacement teacher",
                "responses": {"200": {"description": "Summary returned"}}
            }
        },
        "/users/{id}/impact-report": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export the deletion impact report",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "default": "csv"}
                ],
                "responses": {"200": {"description": "Document"}}
            }
        },
        "/catalog/sections/{id}/roster": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export a section roster",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "default": "csv"}
                ],
                "responses": {"200": {"description": "Document"}}
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
