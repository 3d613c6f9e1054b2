package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mtgbinder/mtgbinder-api/config"
	"github.com/mtgbinder/mtgbinder-api/internal/infrastructure/postgres"
	"github.com/mtgbinder/mtgbinder-api/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	db          *postgres.DB
	redisClient *redis.Client
	tokenCodec  *helpers.TokenCodec
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetDB(d *postgres.DB) { db = d }
func GetDB() *postgres.DB  { return db }

func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetTokenCodec(c *helpers.TokenCodec) { tokenCodec = c }
func GetTokenCodec() *helpers.TokenCodec  { return tokenCodec }
