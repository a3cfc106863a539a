package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "TaskBoard API Documentation",
        "title": "TaskBoard API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {
                        "description": "Server is healthy"
                    }
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register",
                "description": "Create a user account with username and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "description": "Account credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "username": {
                                    "type": "string",
                                    "example": "alice"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "correct-horse-battery"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Account created"
                    },
                    "409": {
                        "description": "Username already in use"
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Login",
                "description": "Login with username and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "credentials",
                        "description": "Login credentials",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "username": {
                                    "type": "string",
                                    "example": "alice"
                                },
                                "password": {
                                    "type": "string",
                                    "example": "correct-horse-battery"
                                }
                            }
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Login successful"
                    },
                    "401": {
                        "description": "Invalid credentials"
                    }
                }
            }
        },
        "/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List tasks",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "All tasks with collaborators"
                    }
                }
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create task",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {
                        "description": "Task created"
                    }
                }
            }
        },
        "/time-trackers/tasks/{taskId}/start": {
            "post": {
                "tags": ["TimeTracking"],
                "summary": "Start tracking",
                "description": "Open a tracking interval for a task. A task can hold at most one open interval.",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "in": "path",
                        "name": "taskId",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Tracking started"
                    },
                    "400": {
                        "description": "Already tracking time for this task"
                    }
                }
            }
        },
        "/time-trackers/tasks/{taskId}/stop": {
            "post": {
                "tags": ["TimeTracking"],
                "summary": "Stop tracking",
                "description": "Close the open interval of a task",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "in": "path",
                        "name": "taskId",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Tracking stopped"
                    },
                    "404": {
                        "description": "No active time tracking found"
                    }
                }
            }
        },
        "/time-trackers/summary": {
            "get": {
                "tags": ["TimeTracking"],
                "summary": "Tracking summary",
                "description": "Daily and monthly tracked totals as zero-padded HH:MM",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {
                        "description": "Summary totals"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "TaskBoard API",
	Description:      "TaskBoard API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
