package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/validators"
)

// bindJSON decodes the body and writes the 400 itself on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if field, tag, ok := validators.FirstField(err); ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error_code": "invalid_request",
				"message":    "Invalid request body.",
				"field":      field,
				"rule":       tag,
			})
			return false
		}
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		c.Abort()
		return false
	}
	return true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		c.Abort()
		return 0, false
	}
	return uint(id), true
}

func queryBool(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.Query(name))
	return v
}

// nullableUint tells an absent field apart from an explicit null.
type nullableUint struct {
	Set   bool
	Value *uint
}

func (n *nullableUint) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var v uint
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}
