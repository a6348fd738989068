package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	DataDir   string
	OutputDir string

	ActivityFileName  string
	ContactFileName   string
	DirectoryFileName string

	RefreshMode        string
	RefreshTimes       string
	RefreshIntervalSec int
	WatchTickSec       int

	MaxUploadBytes int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		DataDir:   getEnv("DATA_DIR", cwd),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		ActivityFileName:  getEnv("ACTIVITY_FILE", "To Do (mail.activity).xlsx"),
		ContactFileName:   getEnv("CONTACT_FILE", "Contact (res.partner).xlsx"),
		DirectoryFileName: getEnv("DIRECTORY_FILE", "GUM Resource Contact (gm.res.contact).xlsx"),

		RefreshMode:        getEnv("REFRESH_MODE", "daily"),
		RefreshTimes:       getEnv("REFRESH_TIMES", "07:00,13:00"),
		RefreshIntervalSec: getEnvInt("REFRESH_INTERVAL_SEC", 300),
		WatchTickSec:       getEnvInt("WATCH_TICK_SEC", 5),

		MaxUploadBytes: getEnvInt("MAX_UPLOAD_BYTES", 20*1024*1024),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
