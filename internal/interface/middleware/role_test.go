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

func newRoleRouter(codec *helpers.TokenCodec, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{TokenAuth(codec)}
	for _, role := range roles {
		chain = append(chain, AllowRole(role))
	}
	chain = append(chain, RequireAuthorized(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/guarded", chain...)
	return r
}

func doGuarded(t *testing.T, r *gin.Engine, codec *helpers.TokenCodec, roleName string) int {
	t.Helper()
	tok, err := codec.Issue(helpers.Identity{AccountID: 1, Email: "a@b.com", RoleID: 1, RoleName: roleName})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set(TokenHeader, tok)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAllowRole_GrantsMatchingRole(t *testing.T) {
	codec := helpers.NewTokenCodec("secret", time.Hour)
	r := newRoleRouter(codec, "admin")

	assert.Equal(t, http.StatusOK, doGuarded(t, r, codec, "admin"))
}

func TestAllowRole_MismatchIsForbiddenNotUnauthorized(t *testing.T) {
	codec := helpers.NewTokenCodec("secret", time.Hour)
	r := newRoleRouter(codec, "admin")

	assert.Equal(t, http.StatusForbidden, doGuarded(t, r, codec, "member"))
}

func TestAllowRole_ChainsCommute(t *testing.T) {
	codec := helpers.NewTokenCodec("secret", time.Hour)
	forward := newRoleRouter(codec, "admin", "moderator")
	reverse := newRoleRouter(codec, "moderator", "admin")

	for _, role := range []string{"admin", "moderator", "member"} {
		assert.Equal(t, doGuarded(t, forward, codec, role), doGuarded(t, reverse, codec, role), "role %s", role)
	}
	assert.Equal(t, http.StatusOK, doGuarded(t, forward, codec, "moderator"))
	assert.Equal(t, http.StatusForbidden, doGuarded(t, forward, codec, "member"))
}

func TestAllowRole_WithoutIdentityIsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", AllowRole("admin"), RequireAuthorized(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthorized_NoGrantsIsForbidden(t *testing.T) {
	codec := helpers.NewTokenCodec("secret", time.Hour)
	r := newRoleRouter(codec) // authenticated but no AllowRole in the chain

	assert.Equal(t, http.StatusForbidden, doGuarded(t, r, codec, "admin"))
}
