// Package logging inicializa o logger compartilhado do lintgate. Os logs vão
// para o stderr; o stdout fica reservado para o relatório.
package logging

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var Logger *zap.SugaredLogger

func InitLogger(debug bool) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		panic("erro ao inicializar logger: " + err.Error())
	}
	Logger = logger.Sugar()
}

// ForRun devolve o logger com um id de correlação próprio da execução. O id
// existe só nos logs; o relatório agregado segue função pura das entradas.
func ForRun() *zap.SugaredLogger {
	return Logger.With("run_id", uuid.NewString())
}
