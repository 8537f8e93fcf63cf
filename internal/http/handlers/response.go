// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response envelope used across all endpoints.
// Every response, success or failure, has the same shape:
//
//	HTTP/1.1 200 OK
//	{ "success": true, "message": "User retrieved successfully", "data": {...} }
//
//	HTTP/1.1 404 Not Found
//	{ "success": false, "message": "User not found" }
//
// "data" is omitted when an operation produces no payload (e.g. deletes).
// Failure envelopes are written by the error-translating middleware; handlers
// only write success envelopes and report failures via c.Error.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the standard envelope returned by all endpoints.
//
// This struct is used in OpenAPI documentation via Swagger annotations.
type Response struct {
	// Success reports whether the operation completed.
	Success bool `json:"success" example:"true"`
	// Message is a human-readable outcome description, safe to show to users.
	Message string `json:"message" example:"User retrieved successfully"`
	// Data carries the operation's payload, when it has one.
	Data any `json:"data,omitempty"`
}

// ok writes a success envelope with the given status, message, and payload.
// Pass a nil data for operations with no payload.
func ok(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, Response{Success: true, Message: msg, Data: data})
}

// Fail writes a failure envelope directly, bypassing the error translator.
//
// External packages (e.g. router setup for unmatched routes) call Fail to
// produce consistent envelopes without depending on unexported helpers.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: msg})
}

// noRoute responds to requests that matched no registered route.
func noRoute(c *gin.Context) {
	Fail(c, http.StatusNotFound,
		"Route "+c.Request.Method+" "+c.Request.URL.Path+" not found")
}

// NoRoute returns the handler installed for unmatched routes.
func NoRoute() gin.HandlerFunc { return noRoute }
