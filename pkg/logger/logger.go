// Package logger salida estructurada del facturador: la API registra arranque,
// apagado y cada envío a SUNAT; el orquestador escribe un evento por etapa del
// pipeline bajo su componente. El CLI usa Nop salvo con --verbose, que escribe
// en stderr para no mezclarse con el XML o el JSON de stdout.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones para el logger.
type Config struct {
	Env   string    // APP_ENV: development -> consola legible; production -> JSON
	Level string    // LOG_LEVEL: trace, debug, info, warn, error
	Out   io.Writer // destino; nil = stdout (el CLI pasa stderr)
}

// Logger se inyecta en el orquestador y en los comandos.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger de cmd/api y de facturador --verbose.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Out != nil {
		w = cfg.Out
	}
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	level := parseLevel(cfg.Level)
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()

	// El global de zerolog queda alineado por si alguna dependencia lo usa
	log.Logger = zl

	return &Logger{zl: zl}
}

// Nop descarta todo: orquestador sin logger, tests y CLI sin --verbose.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Trace, Debug, Info, Warn, Error delegados a zerolog.
func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With crea un sublogger con campos fijos.
func (l *Logger) With() zerolog.Context {
	return l.zl.With()
}

// Component fija el campo "component" (p. ej. "sunat-orchestrator").
func (l *Logger) Component(name string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", name).Logger()}
}

// Zerolog devuelve el logger interno por si se necesita la API directa.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
