package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mtgbinder/mtgbinder-api/pkg/response"
)

// AllowRole is a single-role authorization check, composed in chains
// after TokenAuth. A matching role ORs the per-request authorized flag to
// true; a mismatch is not a rejection, it defers to sibling checks. The
// flag is never revoked once set, so chains commute: [AllowRole(a),
// AllowRole(b)] grants the same set as [AllowRole(b), AllowRole(a)].
func AllowRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok {
			resp := response.Error[any](c, http.StatusUnauthorized, "access denied: authentication required", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		granted := ident.RoleName == role
		c.Set(ctxAuthorizedKey, c.GetBool(ctxAuthorizedKey) || granted)
		c.Next()
	}
}

// RequireAuthorized is the terminal gate after the last AllowRole in a
// chain: the request proceeds only if some check granted access.
func RequireAuthorized() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ctxAuthorizedKey) {
			resp := response.Error[any](c, http.StatusForbidden, "access denied: insufficient role", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}
