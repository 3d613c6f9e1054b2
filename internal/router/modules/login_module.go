package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/mtgbinder/mtgbinder-api/internal/interface/http"
	"github.com/mtgbinder/mtgbinder-api/internal/interface/middleware"
)

// LoginModule wires the credential exchange route.
// Public: POST /api/login (rate limited per IP)
type LoginModule struct {
	Handler    *handlers.LoginHandler
	Redis      *redis.Client
	RateMax    int
	RateWindow time.Duration
}

func NewLoginModule(h *handlers.LoginHandler, rdb *redis.Client, max int, window time.Duration) *LoginModule {
	return &LoginModule{Handler: h, Redis: rdb, RateMax: max, RateWindow: window}
}

func (m *LoginModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(m.Redis, m.RateMax, m.RateWindow, middleware.KeyByIP())
	rg.POST("/login", limiter, m.Handler.Login)
}
