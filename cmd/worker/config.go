package main

import (
	"log"
	"strconv"

	"fitlink-backend/internal/shared/utils"
)

// Config holds the worker's own configuration.
type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
}

// loadConfig loads configuration from environment variables
func loadConfig() *Config {
	db, _ := strconv.Atoi(utils.GetEnvVariable("REDIS_DB", "0"))
	concurrency, _ := strconv.Atoi(utils.GetEnvVariable("WORKER_CONCURRENCY", "10"))

	cfg := &Config{
		RedisAddr:     utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		RedisPassword: utils.GetEnvVariable("REDIS_PASSWORD", ""),
		RedisDB:       db,
		Concurrency:   concurrency,
	}

	log.Printf("[Config] redis: %s, concurrency: %d", cfg.RedisAddr, cfg.Concurrency)

	return cfg
}
