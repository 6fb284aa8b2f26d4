package controller

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/Gradebook/internal/dto"
	"github.com/lshigami/Gradebook/internal/gateway"
	"github.com/rs/zerolog/log"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey  = "request_id"
	sessionKeyKey = "session_key"
)

// RequestID tags every request with an id, reusing the caller's when present,
// and makes it available to the gateway for forwarding.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := strings.TrimSpace(ctx.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(requestIDKey, id)
		ctx.Writer.Header().Set(RequestIDHeader, id)
		ctx.Request = ctx.Request.WithContext(gateway.WithRequestID(ctx.Request.Context(), id))
		ctx.Next()
	}
}

// BearerAuth forwards the caller's bearer token to the backend and derives the
// session key used to find the caller's notification store. The token itself is
// never stored.
func BearerAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if ok && token != "" {
			sum := sha256.Sum256([]byte(token))
			ctx.Set(sessionKeyKey, hex.EncodeToString(sum[:]))
			ctx.Request = ctx.Request.WithContext(gateway.WithAuthToken(ctx.Request.Context(), token))
		}
		ctx.Next()
	}
}

// RequireSession rejects requests that carry no bearer token.
func RequireSession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if SessionKeyFrom(ctx) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing bearer token"})
			return
		}
		ctx.Next()
	}
}

// RequestLogger logs one zerolog line per request.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		log.Info().
			Str("request_id", RequestIDFrom(ctx)).
			Str("client_ip", ctx.ClientIP()).
			Str("method", ctx.Request.Method).
			Str("path", ctx.FullPath()).
			Int("status_code", ctx.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("user_agent", ctx.Request.UserAgent()).
			Str("error_message", ctx.Errors.ByType(gin.ErrorTypePrivate).String()).
			Msg("gin_request")
	}
}

func RequestIDFrom(ctx *gin.Context) string {
	return ctx.GetString(requestIDKey)
}

func SessionKeyFrom(ctx *gin.Context) string {
	return ctx.GetString(sessionKeyKey)
}
