package handler

import (
	"time"

	"ecommerce-connect/internal/adapter/http/middleware"
	redisStore "ecommerce-connect/internal/adapter/storage/redis"
	"ecommerce-connect/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DefaultMaxBodyBytes is the request body limit when none is configured.
const DefaultMaxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	MessageSvc     ports.MessageService
	FormSvc        ports.FormService
	ResponseSvc    ports.ResponseDecoder
	TokenSvc       ports.TokenService         // nil = bearer auth disabled
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Clock          func() time.Time // stamps form purchase times; nil = time.Now
	MaxBodyBytes   int64            // 0 = DefaultMaxBodyBytes
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	maxBody := deps.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBody))
	r.Use(middleware.AuditLog(deps.Logger))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")
	if deps.TokenSvc != nil {
		v1.Use(middleware.JWTAuth(deps.TokenSvc, deps.Logger))
	}

	messageHandler := NewMessageHandler(deps.MessageSvc)
	formHandler := NewFormHandler(deps.FormSvc, deps.Clock)
	responseHandler := NewResponseHandler(deps.ResponseSvc)

	v1.POST("/messages/:kind", rl("messages"), messageHandler.Sign)
	v1.POST("/forms", rl("forms"), formHandler.Sign)
	v1.POST("/responses/:kind", rl("responses"), responseHandler.Decode)

	return r
}
