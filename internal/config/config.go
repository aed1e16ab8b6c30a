package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Keys  APIKeys
	Agent AgentConfig
	TTS   TTSConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type APIKeys struct {
	Gemini     string
	Exa        string
	ElevenLabs string
}

type AgentConfig struct {
	Model                   string
	MaxIterations           int
	TranscriptWindowSeconds float64
	MonitorIntervalSeconds  int
	AudioCacheTTLMinutes    int
}

type TTSConfig struct {
	VoiceID string
	ModelID string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Keys: APIKeys{
			Gemini:     getEnv("GEMINI_API_KEY", ""),
			Exa:        getEnv("EXA_API_KEY", ""),
			ElevenLabs: getEnv("ELEVENLABS_API_KEY", ""),
		},
		Agent: AgentConfig{
			Model:                   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			MaxIterations:           getEnvAsInt("AGENT_MAX_ITERATIONS", 10),
			TranscriptWindowSeconds: float64(getEnvAsInt("TRANSCRIPT_WINDOW_SECONDS", 30)),
			MonitorIntervalSeconds:  getEnvAsInt("MONITOR_INTERVAL_SECONDS", 30),
			AudioCacheTTLMinutes:    getEnvAsInt("AUDIO_CACHE_TTL_MINUTES", 30),
		},
		TTS: TTSConfig{
			VoiceID: getEnv("ELEVENLABS_VOICE_ID", "21m00Tcm4TlvDq8ikWAM"),
			ModelID: getEnv("ELEVENLABS_MODEL_ID", "eleven_turbo_v2_5"),
		},
	}

	// The reasoning engine is not optional; refuse to start without it.
	if cfg.Keys.Gemini == "" {
		log.Fatal("[FATAL] GEMINI_API_KEY is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
