package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgbinder/mtgbinder-api/pkg/helpers"
)

func newAuthRouter(codec *helpers.TokenCodec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", TokenAuth(codec), func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"accountid": ident.AccountID, "rolename": ident.RoleName})
	})
	return r
}

func TestTokenAuth_MissingToken(t *testing.T) {
	r := newAuthRouter(helpers.NewTokenCodec("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenAuth_InvalidToken(t *testing.T) {
	r := newAuthRouter(helpers.NewTokenCodec("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(TokenHeader, "garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenAuth_TokenFromOtherSecretRejected(t *testing.T) {
	r := newAuthRouter(helpers.NewTokenCodec("secret", time.Hour))

	tok, err := helpers.NewTokenCodec("other", time.Hour).Issue(helpers.Identity{AccountID: 1, Email: "a@b.com"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(TokenHeader, tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenAuth_ValidTokenAttachesIdentity(t *testing.T) {
	codec := helpers.NewTokenCodec("secret", time.Hour)
	r := newAuthRouter(codec)

	tok, err := codec.Issue(helpers.Identity{AccountID: 9, Email: "a@b.com", RoleID: 1, RoleName: "admin"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(TokenHeader, tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accountid":9`)
	assert.Contains(t, w.Body.String(), `"rolename":"admin"`)
}
