// Package config loads typed configuration structs from environment
// variables using caarlos0/env tags, with optional dotenv files read through
// godotenv.
//
// Nested structs are composed with envPrefix so every infrastructure package
// can own its own Config type:
//
//	type AppConfig struct {
//		HTTP  httpserver.Config `envPrefix:"HTTP_"`
//		PG    pg.Config         `envPrefix:"PG_"`
//		Redis redis.Config      `envPrefix:"REDIS_"`
//	}
//
//	cfg, err := config.Load[AppConfig]()
//
// Load never mutates the process environment and keeps no package state, so
// tests can call it with WithEnvironment in parallel.
package config
