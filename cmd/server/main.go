package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jummah-prayer/server/internal/aladhan"
	"github.com/jummah-prayer/server/internal/db"
	"github.com/jummah-prayer/server/internal/geocode"
	"github.com/jummah-prayer/server/internal/notify"
	"github.com/jummah-prayer/server/internal/praytime"
	"github.com/jummah-prayer/server/internal/redis"
)

// redisCache adapts the redis package to the schedule source's cache.
type redisCache struct{}

func (redisCache) Get(ctx context.Context, key string) (string, bool) {
	return redis.Get(ctx, key)
}

func (redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	redis.Set(ctx, key, value, ttl)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using process environment")
	}
	env := LoadEnvironment()

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if env.MigrationsPath != "" {
		if err := db.RunMigrations(env.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("db migrate")
		}
	}

	var cache praytime.Cache
	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
		cache = redisCache{}
	}

	upstream := aladhan.NewClient()
	if env.AladhanBaseURL != "" {
		upstream.BaseURL = env.AladhanBaseURL
	}
	source := praytime.NewSource(upstream, cache, time.Hour)
	geocoder := geocode.NewClient()

	var sender notify.Sender = notify.LogSender{}
	if env.MQTTBrokerURL != "" {
		mqttSender, err := notify.NewMQTTSender(env.MQTTBrokerURL, env.MQTTClientName)
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt connect")
		}
		defer mqttSender.Close()
		sender = mqttSender
	}
	alerts := notify.NewDispatcher(sender)

	store := db.NewStore()

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, env, store, source, geocoder, alerts)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
