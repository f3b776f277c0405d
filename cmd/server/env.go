package main

import (
	"log"
	"os"
)

type Environment struct {
	Environment    string
	ServerAddress  string
	SecretKey      string
	DatabaseURL    string
	MigrationsPath string
	RedisAddress   string
	RedisUsername  string
	RedisPassword  string
	MQTTBrokerURL  string
	MQTTClientName string
	AladhanBaseURL string
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	env := Environment{
		Environment:   os.Getenv("APP_ENV"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SecretKey:     os.Getenv("JWT_SECRET"),
		ServerAddress: os.Getenv("SERVER_ADDRESS"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),

		MQTTBrokerURL:  os.Getenv("MQTT_BROKER_URL"),
		MQTTClientName: os.Getenv("MQTT_CLIENT_NAME"),

		AladhanBaseURL: os.Getenv("ALADHAN_BASE_URL"),
	}

	// Basic validation
	if env.DatabaseURL == "" || env.SecretKey == "" || env.ServerAddress == "" {
		log.Fatal("Missing required environment variables")
	}

	if env.MQTTClientName == "" {
		env.MQTTClientName = "jummah-server"
	}

	return env
}
