package handlers

import (
	"net/http"

	"github.com/arnavshah/optimizer-api-go/pkg/models"
	"github.com/arnavshah/optimizer-api-go/pkg/optimizer"
	"github.com/gin-gonic/gin"
)

// ValidateInput checks a problem payload without solving it
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ProblemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Employees) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one employee is required",
		})
		return
	}

	if len(input.Shifts) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one shift is required",
		})
		return
	}

	// Full structural validation: IDs, dates, times, staffing bounds,
	// preference references and weights.
	if _, err := optimizer.New(&input); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"shift_count":    len(input.Shifts),
			"employee_count": len(input.Employees),
		},
	})
}
