package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/mtgbinder/mtgbinder-api/internal/domain/entity"
	handlers "github.com/mtgbinder/mtgbinder-api/internal/interface/http"
	"github.com/mtgbinder/mtgbinder-api/internal/interface/middleware"
	"github.com/mtgbinder/mtgbinder-api/pkg/helpers"
)

// CardModule wires card routes.
// Public: GET /api/cards, GET /api/cards/:cardid
// Admin or moderator: POST /api/cards, PUT /api/cards/:cardid
// Admin only: DELETE /api/cards/:cardid
type CardModule struct {
	Handler *handlers.CardHandler
	Codec   *helpers.TokenCodec
}

func NewCardModule(h *handlers.CardHandler, codec *helpers.TokenCodec) *CardModule {
	return &CardModule{Handler: h, Codec: codec}
}

func (m *CardModule) Register(rg *gin.RouterGroup) {
	auth := middleware.TokenAuth(m.Codec)
	editors := []gin.HandlerFunc{
		auth,
		middleware.AllowRole(entity.RoleAdmin),
		middleware.AllowRole(entity.RoleModerator),
		middleware.RequireAuthorized(),
	}
	adminOnly := []gin.HandlerFunc{
		auth,
		middleware.AllowRole(entity.RoleAdmin),
		middleware.RequireAuthorized(),
	}

	cards := rg.Group("/cards")

	cards.GET("", m.Handler.List)
	cards.GET("/:cardid", m.Handler.GetByID)

	cards.POST("", append(editors, m.Handler.Create)...)
	cards.PUT("/:cardid", append(editors, m.Handler.Update)...)
	cards.DELETE("/:cardid", append(adminOnly, m.Handler.Delete)...)
}
