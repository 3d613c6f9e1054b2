package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mtgbinder/mtgbinder-api/pkg/helpers"
	"github.com/mtgbinder/mtgbinder-api/pkg/response"
)

// TokenHeader carries the bearer token on requests; login answers with a
// fresh token in the same header on the response.
const TokenHeader = "X-Authentication-Token"

const (
	ctxIdentityKey   = "identity"
	ctxAuthorizedKey = "authorized"
)

// TokenAuth is the authentication gate. It locates the bearer token in
// the designated header and verifies it with the codec; the signature is
// the authority, no store access happens here. On success the decoded
// identity is attached to the request context.
func TokenAuth(codec *helpers.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "access denied: no token provided", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		ident, err := codec.Verify(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "access denied: invalid token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set(ctxIdentityKey, ident)
		c.Next()
	}
}

// IdentityFrom returns the identity attached by TokenAuth, if any.
func IdentityFrom(c *gin.Context) (*helpers.Identity, bool) {
	v, ok := c.Get(ctxIdentityKey)
	if !ok {
		return nil, false
	}
	ident, ok := v.(*helpers.Identity)
	return ident, ok
}
