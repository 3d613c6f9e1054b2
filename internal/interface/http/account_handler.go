package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mtgbinder/mtgbinder-api/internal/application"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/entity"
	"github.com/mtgbinder/mtgbinder-api/internal/domain/repository"
	"github.com/mtgbinder/mtgbinder-api/internal/interface/middleware"
	"github.com/mtgbinder/mtgbinder-api/pkg/response"
	"github.com/mtgbinder/mtgbinder-api/pkg/validation"
)

type AccountHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type accountListQuery struct {
	Email  string `form:"email" binding:"omitempty,email"`
	RoleID int64  `form:"roleid" binding:"omitempty,min=1"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=3"`
}

type accountUpdateRequest struct {
	Role *struct {
		RoleID int64 `json:"roleid" binding:"required,min=1"`
	} `json:"role"`
}

type ownUpdateRequest struct {
	Password string `json:"password" binding:"omitempty,min=3"`
}

// List answers all accounts, optionally narrowed by recognized filters.
// Multiple filters combine as the intersection of per-field result sets
// by account id.
func (h *AccountHandler) List(c *gin.Context) {
	if unknown := unknownQueryKeys(c, "email", "roleid"); len(unknown) > 0 {
		writeBadRequest(c, map[string]any{"unrecognized": unknown})
		return
	}
	var q accountListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBadRequest(c, validation.ToDetails(err))
		return
	}

	var filters []repository.Filter
	if q.Email != "" {
		filters = append(filters, repository.Filter{Field: "email", Value: q.Email})
	}
	if q.RoleID != 0 {
		filters = append(filters, repository.Filter{Field: "roleid", Value: q.RoleID})
	}

	accounts, err := h.listFiltered(c, filters)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, accounts, "accounts")
	c.JSON(resp.Status, resp)
}

func (h *AccountHandler) listFiltered(c *gin.Context, filters []repository.Filter) ([]entity.Account, error) {
	if len(filters) == 0 {
		return h.Svc.List(c.Request.Context(), nil)
	}
	sets := make([][]entity.Account, 0, len(filters))
	for i := range filters {
		set, err := h.Svc.List(c.Request.Context(), &filters[i])
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return intersectByID(sets, func(a entity.Account) int64 { return a.AccountID }), nil
}

// GetOwn re-fetches the caller's account by the id embedded in its
// token, so the response reflects current store state rather than the
// token's snapshot.
func (h *AccountHandler) GetOwn(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		resp := response.Error[any](c, http.StatusUnauthorized, "access denied: authentication required", nil)
		c.JSON(resp.Status, resp)
		return
	}
	account, err := h.Svc.GetByID(c.Request.Context(), ident.AccountID)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, account, "account")
	c.JSON(resp.Status, resp)
}

func (h *AccountHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "accountid")
	if !ok {
		return
	}
	account, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, account, "account")
	c.JSON(resp.Status, resp)
}

// Register creates an account with the default role. The password
// travels separately from the account shape and is validated against the
// raw-password rules, never stored as-is.
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, validation.ToDetails(err))
		return
	}
	account, err := h.Svc.Create(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := response.Success(c, http.StatusCreated, account, "account created")
	c.JSON(resp.Status, resp)
}

// UpdateOwn lets the caller change its own password. Email, id, and role
// are immutable through this endpoint; role changes go through an admin
// via PUT /accounts/:accountid.
func (h *AccountHandler) UpdateOwn(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		resp := response.Error[any](c, http.StatusUnauthorized, "access denied: authentication required", nil)
		c.JSON(resp.Status, resp)
		return
	}
	var req ownUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, validation.ToDetails(err))
		return
	}

	account, err := h.Svc.GetByID(c.Request.Context(), ident.AccountID)
	if err != nil {
		writeError(c, err)
		return
	}
	if req.Password != "" {
		account, err = h.Svc.UpdatePassword(c.Request.Context(), ident.AccountID, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
	}
	resp := response.Success(c, http.StatusOK, account, "account updated")
	c.JSON(resp.Status, resp)
}

// Update changes another account's role. Admins cannot target their own
// account here: demoting yourself could remove the last admin and lock
// the system.
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "accountid")
	if !ok {
		return
	}
	ident, _ := middleware.IdentityFrom(c)
	if ident != nil && ident.AccountID == id {
		writeForbidden(c, "request denied: use PUT /api/accounts/own to change your own account")
		return
	}

	var req accountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, validation.ToDetails(err))
		return
	}

	var account *entity.Account
	var err error
	if req.Role != nil {
		account, err = h.Svc.UpdateRole(c.Request.Context(), id, req.Role.RoleID)
	} else {
		account, err = h.Svc.GetByID(c.Request.Context(), id)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, account, "account updated")
	c.JSON(resp.Status, resp)
}

// Delete removes another account; self-deletion is refused for the same
// last-admin reason as Update.
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "accountid")
	if !ok {
		return
	}
	ident, _ := middleware.IdentityFrom(c)
	if ident != nil && ident.AccountID == id {
		writeForbidden(c, "request denied: cannot delete own account")
		return
	}

	account, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, account, "account deleted")
	c.JSON(resp.Status, resp)
}
