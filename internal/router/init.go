package router

import (
	"github.com/mtgbinder/mtgbinder-api/internal/application"
	"github.com/mtgbinder/mtgbinder-api/internal/container"
	"github.com/mtgbinder/mtgbinder-api/internal/infrastructure/postgres"
	handlers "github.com/mtgbinder/mtgbinder-api/internal/interface/http"
	"github.com/mtgbinder/mtgbinder-api/internal/router/modules"
)

// InitModules builds the feature modules from container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	codec := container.GetTokenCodec()

	accountRepo := postgres.NewAccountRepository(container.GetDB())
	cardRepo := postgres.NewCardRepository(container.GetDB())

	accountSvc := application.NewAccountService(accountRepo, logger)
	cardSvc := application.NewCardService(cardRepo, logger)

	loginHandler := handlers.NewLoginHandler(accountSvc, codec, logger)
	accountHandler := handlers.NewAccountHandler(accountSvc, logger)
	cardHandler := handlers.NewCardHandler(cardSvc, logger)

	r.Add(modules.NewLoginModule(loginHandler, container.GetRedis(), cfg.LoginRateMax, cfg.LoginRateWindow))
	r.Add(modules.NewAccountModule(accountHandler, codec))
	r.Add(modules.NewCardModule(cardHandler, codec))
}
