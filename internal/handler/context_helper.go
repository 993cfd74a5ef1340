package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-viewer/internal/middleware"
	"github.com/noah-isme/course-viewer/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func withMeta(c *gin.Context, extra map[string]interface{}) map[string]interface{} {
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{}, len(extra))
	}
	for k, v := range extra {
		meta[k] = v
	}
	return meta
}
