// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements AdminGate, the guard in front of master-list mutations
// and log deletion. Callers prove they are the department admin by sending the
// shared secret in the X-Admin-Secret header; everything else on the API stays
// open to the team.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminSecretHeader is the request header carrying the shared admin secret.
const AdminSecretHeader = "X-Admin-Secret"

// AdminGate returns a Gin middleware that rejects requests whose
// X-Admin-Secret header does not match secret.
//
// The comparison is constant-time so the gate does not leak secret prefixes
// through response timing. A missing or wrong header yields:
//
//	HTTP/1.1 401 Unauthorized
//	{
//	  "request_id": "<uuid>",
//	  "code":       "unauthorized",
//	  "message":    "admin secret required"
//	}
//
// An empty secret disables the gate entirely. Config validation rejects that
// for the real server; the open branch exists for embedded/test wiring.
func AdminGate(secret string) gin.HandlerFunc {
	want := []byte(secret)
	return func(c *gin.Context) {
		if len(want) == 0 {
			c.Next()
			return
		}

		got := []byte(strings.TrimSpace(c.GetHeader(AdminSecretHeader)))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"request_id": c.Writer.Header().Get("X-Request-ID"),
				"code":       "unauthorized",
				"message":    "admin secret required",
			})
			return
		}
		c.Next()
	}
}
