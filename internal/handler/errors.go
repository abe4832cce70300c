package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tk-admin-api/pkg/response"
)

// abortWithError writes the error envelope and attaches err to the context so
// the access log can report it.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.Error(c, err)
}
