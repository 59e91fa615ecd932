// Package logger arma el logger estructurado que comparten los binarios
// del servicio (api, migrate y seed). Todos escriben a stdout: en
// development con la consola legible de zerolog y en cualquier otro
// entorno como JSON por línea, listo para un agregador.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config del logger. Level acepta los nombres de zerolog (debug, info,
// warn, error); un valor vacío o desconocido cae en info.
type Config struct {
	Env   string
	Level string
}

// Logger envuelve zerolog para inyectarlo por constructor en vez de
// depender del global.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según el entorno y además reemplaza el logger
// global de zerolog, así las librerías que loguean por su cuenta salen
// por el mismo destino y formato.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un sublogger con campos fijos, por ejemplo el componente.
func (l *Logger) With() zerolog.Context { return l.zl.With() }

// Zerolog expone el logger interno para integraciones que piden la API
// de zerolog directamente.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }
