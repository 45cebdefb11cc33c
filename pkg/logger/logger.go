package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init работает с настройками logrus по умолчанию, поэтому библиотечный код
// можно вызывать и без инициализации (например, из тестов).
var Log = logrus.New()

// Init инициализирует глобальный логгер из окружения.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	// По умолчанию - "info". Для отладки фаз хода можно выставить "debug".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	Configure(logLevel, os.Getenv("LOG_FORMAT"), os.Stdout)
}

// Configure задает уровень, формат ("json" или текст) и вывод.
// Неизвестный уровень молча превращается в info.
func Configure(logLevel, logFormat string, out io.Writer) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" - для продакшена и сбора логов, "text" - для удобной разработки.
	if strings.ToLower(logFormat) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(out)
}

// For возвращает логгер с полем component.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
