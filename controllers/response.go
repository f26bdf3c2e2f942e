package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/stock-api/models"
	"github.com/kendall-kelly/stock-api/repository"
	"github.com/kendall-kelly/stock-api/utils"
	"github.com/shopspring/decimal"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string, details ...string) {
	body := gin.H{
		"code":    code,
		"message": message,
	}
	if len(details) > 0 {
		body["details"] = details[0]
	}
	c.JSON(status, gin.H{
		"success": false,
		"error":   body,
	})
}

func respondValidationError(c *gin.Context, message string, err error) {
	respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", message, err.Error())
}

// respondRepositoryError maps a repository error onto the error envelope.
// Anything that is not a missing entity is reported as a database error and
// attached to the context for the request log.
func respondRepositoryError(c *gin.Context, err error, message string) {
	var notFound *repository.NotFoundError
	if errors.As(err, &notFound) {
		respondError(c, http.StatusNotFound, notFoundCode(notFound.Entity), capitalize(notFound.Error()))
		return
	}
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", message)
}

// notFoundCode turns "supplier order" into "SUPPLIER_ORDER_NOT_FOUND"
func notFoundCode(entity string) string {
	return strings.ToUpper(strings.ReplaceAll(entity, " ", "_")) + "_NOT_FOUND"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// pathID reads the :id parameter, answering 400 when it is not a positive integer
func pathID(c *gin.Context) (uint, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		respondValidationError(c, "Invalid id", err)
		return 0, false
	}
	return id, true
}

// searchParam returns the single supported query parameter that is set.
// Exactly one must be present.
func searchParam(c *gin.Context, names ...string) (string, string, bool) {
	found := ""
	for _, name := range names {
		if c.Query(name) == "" {
			continue
		}
		if found != "" {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Only one search parameter may be given",
				"got "+found+" and "+name)
			return "", "", false
		}
		found = name
	}
	if found == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "A search parameter is required",
			"one of: "+strings.Join(names, ", "))
		return "", "", false
	}
	return found, c.Query(found), true
}

func money(d decimal.Decimal) string {
	return d.StringFixed(models.MoneyPlaces)
}

func validateMoney(field string, d *decimal.Decimal) error {
	if d != nil && d.IsNegative() {
		return errors.New(field + " must not be negative")
	}
	return nil
}
