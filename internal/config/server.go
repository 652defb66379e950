package config

// ServerConfig holds process-level configuration read from the environment
type ServerConfig struct {
	Port      string
	MongoURI  string
	MongoDB   string
	RedisURI  string
	JWTSecret string

	AdminUsername string
	AdminPassword string
}

// LoadServerConfig reads server configuration with development defaults
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:          getEnvOrDefault("PORT", "8080"),
		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnvOrDefault("MONGO_DB", "avatarsurvey"),
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "super-secret-key-change-in-production"),
		AdminUsername: getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", "password123"),
	}
}
