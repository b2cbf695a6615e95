package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ClampLimit returns def when limit is unset or invalid and caps it at max
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// QueryLimit reads the "limit" query parameter, falling back to def and capping at max
func QueryLimit(c *gin.Context, def, max int) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return def
	}
	return ClampLimit(limit, def, max)
}

// QueryInt64 reads an optional positive integer query parameter.
// ok is false when the parameter is absent; err is set when it is malformed.
func QueryInt64(c *gin.Context, key string) (value int64, ok bool, err error) {
	raw, present := c.GetQuery(key)
	if !present || raw == "" {
		return 0, false, nil
	}
	value, err = strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, false, strconv.ErrSyntax
	}
	return value, true, nil
}
