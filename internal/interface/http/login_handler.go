package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mtgbinder/mtgbinder-api/internal/application"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/apperr"
	"github.com/mtgbinder/mtgbinder-api/internal/interface/middleware"
	"github.com/mtgbinder/mtgbinder-api/pkg/helpers"
	"github.com/mtgbinder/mtgbinder-api/pkg/response"
	"github.com/mtgbinder/mtgbinder-api/pkg/validation"
)

type LoginHandler struct {
	Svc    *application.AccountService
	Codec  *helpers.TokenCodec
	Logger *logrus.Logger
}

func NewLoginHandler(svc *application.AccountService, codec *helpers.TokenCodec, logger *logrus.Logger) *LoginHandler {
	return &LoginHandler{Svc: svc, Codec: codec, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=3"`
}

// Login verifies the credentials bundle and answers with the account in
// the body and a freshly minted token in the X-Authentication-Token
// response header. Unknown email and wrong password produce the same
// response, so a caller cannot probe which accounts exist; only a badly
// formatted request is reported as such.
func (h *LoginHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, validation.ToDetails(err))
		return
	}

	account, err := h.Svc.CheckCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrInvalidCredentials) {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid account email or password", nil)
			c.JSON(resp.Status, resp)
			return
		}
		writeError(c, err)
		return
	}

	ident := helpers.Identity{
		AccountID: account.AccountID,
		Email:     account.Email,
	}
	if account.Role != nil {
		ident.RoleID = account.Role.RoleID
		ident.RoleName = account.Role.RoleName
	}
	token, err := h.Codec.Issue(ident)
	if err != nil {
		h.Logger.WithError(err).WithField("accountid", account.AccountID).Error("token issue failed")
		writeError(c, err)
		return
	}

	c.Header(middleware.TokenHeader, token)
	resp := response.Success(c, http.StatusOK, account, "login successful")
	c.JSON(resp.Status, resp)
}
