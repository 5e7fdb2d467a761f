package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mbsnyc/mbsnyc-api/internal/models"
)

// APIRootMessage is returned by GET /api/
const APIRootMessage = "MBS NYC API"

func APIRoot(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIRootResponse{Message: APIRootMessage})
}
