package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log é o logger global da aplicação. Por padrão é um logger no-op,
// substituído por InitLogger durante o bootstrap (testes não precisam inicializar).
var Log = zap.NewNop()

// InitLogger configura o logger zap de acordo com o ambiente.
// Em produção emite JSON estruturado; caso contrário usa o modo development.
func InitLogger(env string) {
	var cfg zap.Config

	if env == "production" || env == "release" {
		cfg = zap.Config{
			Encoding:         "json",
			Level:            zap.NewAtomicLevelAt(zapcore.InfoLevel),
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
			EncoderConfig: zapcore.EncoderConfig{
				TimeKey:        "time",
				LevelKey:       "level",
				MessageKey:     "message",
				CallerKey:      "caller",
				EncodeTime:     zapcore.ISO8601TimeEncoder,
				EncodeLevel:    zapcore.CapitalLevelEncoder,
				EncodeCaller:   zapcore.ShortCallerEncoder,
				EncodeDuration: zapcore.StringDurationEncoder,
			},
		}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		panic("falha ao inicializar logger zap: " + err.Error())
	}

	Log = l
	Log.Info("Logger inicializado", zap.String("env", env))
}

// Sync descarrega buffers pendentes do logger.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
