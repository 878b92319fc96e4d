package logger

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON logger for production and a console logger otherwise.
// An unknown level falls back to info.
func New(production bool, level string) (*zap.Logger, error) {
	var config zap.Config
	if production {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	atomic := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if err := atomic.UnmarshalText([]byte(level)); err != nil {
		atomic = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	config.Level = atomic

	return config.Build()
}

// Deduper collapses identical consecutive messages into one line with a repeat count,
// flushed once no repeat has arrived for flushDelay.
type Deduper struct {
	mu         sync.Mutex
	log        *zap.SugaredLogger
	lastMsg    string
	count      int
	flushDelay time.Duration
	timer      *time.Timer
}

func NewDeduper(log *zap.Logger, flushDelay time.Duration) *Deduper {
	return &Deduper{
		log:        log.Sugar(),
		flushDelay: flushDelay,
	}
}

func (d *Deduper) flush() {
	if d.count == 0 {
		return
	}
	if d.count == 1 {
		d.log.Info(d.lastMsg)
	} else {
		d.log.Infof("%s (%d)", d.lastMsg, d.count)
	}
	d.count = 0
	d.lastMsg = ""
}

func (d *Deduper) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	if msg == d.lastMsg {
		d.count++
	} else {
		d.flush()
		d.lastMsg = msg
		d.count = 1
	}

	d.timer = time.AfterFunc(d.flushDelay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.flush()
	})
}

// Flush writes any pending message immediately.
func (d *Deduper) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.flush()
}
