package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Kicho general ledger API v1"})
}

// registerHomeRoutes registers the API root greeting route
func registerHomeRoutes(group *gin.RouterGroup) {
	group.GET("/", getHome)
}
