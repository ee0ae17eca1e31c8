package ratelimit

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderRemaining carries Result.Remaining on every limited response.
const HeaderRemaining = "X-RateLimit-Remaining"

// Middleware rejects requests over the limit with 429. Backend errors are
// logged and the request is let through.
func Middleware(l *Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := l.Limit(c.Request.Context(), ClientKey(c))
		if err != nil {
			log.Printf("ratelimit: %v", err)
			c.Next()
			return
		}

		c.Header(HeaderRemaining, strconv.Itoa(res.Remaining))
		if res.Blocked {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}

// ClientKey identifies the caller: the resolved client IP, then the raw
// X-Forwarded-For header, then "Unknown IP".
func ClientKey(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	if fwd := strings.TrimSpace(c.GetHeader("X-Forwarded-For")); fwd != "" {
		return fwd
	}
	return "Unknown IP"
}
