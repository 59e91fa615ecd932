package logger

import (
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestNew_NivelConfigurado(t *testing.T) {
	log := New(Config{Env: "production", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, log.Zerolog().GetLevel())
}

func TestNew_NivelDesconocidoCaeEnInfo(t *testing.T) {
	for _, level := range []string{"", "verbose", "INFO "} {
		log := New(Config{Env: "production", Level: level})
		assert.Equal(t, zerolog.InfoLevel, log.Zerolog().GetLevel(), "level %q", level)
	}
}

func TestNew_ReemplazaElGlobal(t *testing.T) {
	New(Config{Env: "production", Level: "error"})
	assert.Equal(t, zerolog.ErrorLevel, zlog.Logger.GetLevel())
}
