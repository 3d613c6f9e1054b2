package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgbinder/mtgbinder-api/internal/application"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/apperr"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/entity"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/repository"
	"github.com/mtgbinder/mtgbinder-api/internal/interface/middleware"
	"github.com/mtgbinder/mtgbinder-api/pkg/helpers"
)

// loginRepo holds exactly one account; the lookup paths are all the
// login flow touches.
type loginRepo struct {
	account entity.Account
	hash    string
}

func (r *loginRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	if email != r.account.Email {
		return nil, fmt.Errorf("%w: account email %s", apperr.ErrNotFound, email)
	}
	cp := r.account
	return &cp, nil
}

func (r *loginRepo) GetByID(_ context.Context, id int64) (*entity.Account, error) {
	if id != r.account.AccountID {
		return nil, fmt.Errorf("%w: account %d", apperr.ErrNotFound, id)
	}
	cp := r.account
	return &cp, nil
}

func (r *loginRepo) List(context.Context, *repository.Filter) ([]entity.Account, error) {
	return []entity.Account{r.account}, nil
}

func (r *loginRepo) Create(context.Context, string, string) (int64, error) {
	return 0, fmt.Errorf("%w: not supported", apperr.ErrPersistence)
}

func (r *loginRepo) UpdateRole(context.Context, int64, int64) error {
	return fmt.Errorf("%w: not supported", apperr.ErrPersistence)
}

func (r *loginRepo) GetCredential(_ context.Context, accountID int64) (*entity.Credential, error) {
	if accountID != r.account.AccountID {
		return nil, fmt.Errorf("%w: credential for account %d", apperr.ErrNotFound, accountID)
	}
	return &entity.Credential{AccountID: accountID, HashedPassword: r.hash}, nil
}

func (r *loginRepo) UpdateCredential(context.Context, int64, string) error {
	return fmt.Errorf("%w: not supported", apperr.ErrPersistence)
}

func (r *loginRepo) Delete(context.Context, int64) error {
	return fmt.Errorf("%w: not supported", apperr.ErrPersistence)
}

func newLoginRouter(t *testing.T) (*gin.Engine, *helpers.TokenCodec) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := helpers.HashPassword("secret1")
	require.NoError(t, err)
	repo := &loginRepo{
		account: entity.Account{
			AccountID: 5,
			Email:     "binder@example.com",
			Role:      &entity.Role{RoleID: 1, RoleName: entity.RoleAdmin},
		},
		hash: hash,
	}

	codec := helpers.NewTokenCodec("test-secret", time.Hour)
	h := NewLoginHandler(application.NewAccountService(repo, nil), codec, nil)

	r := gin.New()
	r.POST("/login", h.Login)
	return r, codec
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	r, codec := newLoginRouter(t)

	w := postLogin(r, `{"email":"binder@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	token := w.Header().Get(middleware.TokenHeader)
	require.NotEmpty(t, token)

	ident, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), ident.AccountID)
	assert.Equal(t, entity.RoleAdmin, ident.RoleName)

	assert.Contains(t, w.Body.String(), `"email":"binder@example.com"`)
	assert.NotContains(t, w.Body.String(), "secret1")
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	r, _ := newLoginRouter(t)

	wrongPass := postLogin(r, `{"email":"binder@example.com","password":"nope123"}`)
	unknown := postLogin(r, `{"email":"ghost@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Empty(t, wrongPass.Header().Get(middleware.TokenHeader))
	assert.Empty(t, unknown.Header().Get(middleware.TokenHeader))
	// both failures carry the same generic message, neither names a cause
	assert.Contains(t, wrongPass.Body.String(), "invalid account email or password")
	assert.Contains(t, unknown.Body.String(), "invalid account email or password")
	assert.NotContains(t, wrongPass.Body.String(), "password mismatch")
	assert.NotContains(t, unknown.Body.String(), "not found")
}

func TestLogin_MalformedRequest(t *testing.T) {
	r, _ := newLoginRouter(t)

	for _, body := range []string{
		`{"email":"not-an-email","password":"secret1"}`,
		`{"email":"binder@example.com"}`,
		`{"email":"binder@example.com","password":"ab"}`,
		`{not json`,
	} {
		w := postLogin(r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
}
