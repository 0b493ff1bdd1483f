package config

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger configures the global logrus logger from LOG_LEVEL, LOG_FORMAT
// and LOG_FILE. defaultFile is used when LOG_FILE is unset; an empty value
// keeps output on stdout only.
func InitLogger(defaultFile string) {
	if GetEnv("LOG_FORMAT", "text") == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	file := GetEnv("LOG_FILE", defaultFile)
	if file == "" {
		log.SetOutput(os.Stdout)
		return
	}
	rotated := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    GetEnvInt("LOG_MAX_SIZE_MB", 100),
		MaxBackups: GetEnvInt("LOG_MAX_BACKUPS", 7),
		MaxAge:     GetEnvInt("LOG_MAX_AGE_DAYS", 30),
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotated))
}
