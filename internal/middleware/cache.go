package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoCache makes clients revalidate on every request. Reports are operator
// data, so shared caches must not store them.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "private, no-cache")
		c.Next()
	}
}

// NoStore forbids caching, for responses that must always reflect the store.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
