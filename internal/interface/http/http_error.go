package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mtgbinder/mtgbinder-api/internal/domain/apperr"
	"github.com/mtgbinder/mtgbinder-api/pkg/response"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	default:
		// DataIntegrityViolation and PersistenceFailure included: both
		// are server-side incidents, not caller errors.
		return http.StatusInternalServerError
	}
}

func messageFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusConflict:
		return "resource already exists"
	case http.StatusUnauthorized:
		return "invalid account email or password"
	case http.StatusBadRequest:
		return "badly formatted request"
	default:
		return "internal server error"
	}
}

// writeError maps an application error kind onto the HTTP boundary.
// Internal detail stays out of the response body.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	resp := response.Error[any](c, status, messageFor(status), nil)
	c.JSON(resp.Status, resp)
}

func writeBadRequest(c *gin.Context, details any) {
	resp := response.Error[any](c, http.StatusBadRequest, "badly formatted request", details)
	c.JSON(resp.Status, resp)
}

func writeForbidden(c *gin.Context, message string) {
	resp := response.Error[any](c, http.StatusForbidden, message, nil)
	c.JSON(resp.Status, resp)
}

// pathID parses a positive integer path parameter, answering 400 itself
// when the value is unusable.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := parsePositiveInt(c.Param(name))
	if err != nil {
		writeBadRequest(c, map[string]string{name: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// unknownQueryKeys returns the query parameter names outside the
// recognized set. Unrecognized filters are caller errors and never reach
// the lifecycle services.
func unknownQueryKeys(c *gin.Context, allowed ...string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		allowedSet[k] = struct{}{}
	}
	var unknown []string
	for k := range c.Request.URL.Query() {
		if _, ok := allowedSet[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	return unknown
}

// intersectByID computes the set intersection of result sets by record
// identifier, preserving the order of the first set.
func intersectByID[T any](sets [][]T, id func(T) int64) []T {
	if len(sets) == 0 {
		return nil
	}
	out := sets[0]
	for _, set := range sets[1:] {
		seen := make(map[int64]struct{}, len(set))
		for _, v := range set {
			seen[id(v)] = struct{}{}
		}
		kept := make([]T, 0, len(out))
		for _, v := range out {
			if _, ok := seen[id(v)]; ok {
				kept = append(kept, v)
			}
		}
		out = kept
	}
	return out
}

func parsePositiveInt(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}

var errInvalidID = errors.New("invalid id")
