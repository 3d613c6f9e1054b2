package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/mtgbinder/mtgbinder-api/internal/domain/entity"
	handlers "github.com/mtgbinder/mtgbinder-api/internal/interface/http"
	"github.com/mtgbinder/mtgbinder-api/internal/interface/middleware"
	"github.com/mtgbinder/mtgbinder-api/pkg/helpers"
)

// AccountModule wires account routes and their guard chains.
// Public: POST /api/accounts (registration)
// Authenticated: GET/PUT /api/accounts/own
// Admin only: GET /api/accounts, GET/PUT/DELETE /api/accounts/:accountid
type AccountModule struct {
	Handler *handlers.AccountHandler
	Codec   *helpers.TokenCodec
}

func NewAccountModule(h *handlers.AccountHandler, codec *helpers.TokenCodec) *AccountModule {
	return &AccountModule{Handler: h, Codec: codec}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	auth := middleware.TokenAuth(m.Codec)
	adminOnly := []gin.HandlerFunc{
		auth,
		middleware.AllowRole(entity.RoleAdmin),
		middleware.RequireAuthorized(),
	}

	accounts := rg.Group("/accounts")

	accounts.POST("", m.Handler.Register)

	// own routes must be declared before the :accountid wildcard
	accounts.GET("/own", auth, m.Handler.GetOwn)
	accounts.PUT("/own", auth, m.Handler.UpdateOwn)

	accounts.GET("", append(adminOnly, m.Handler.List)...)
	accounts.GET("/:accountid", append(adminOnly, m.Handler.GetByID)...)
	accounts.PUT("/:accountid", append(adminOnly, m.Handler.Update)...)
	accounts.DELETE("/:accountid", append(adminOnly, m.Handler.Delete)...)
}
