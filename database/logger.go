package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/skillsenselab/customer-api/logger"
)

// gormLogger adapts the service logger to GORM's logger interface.
type gormLogger struct {
	log           *logger.Logger
	slowThreshold time.Duration
}

func newGormLogger(log *logger.Logger, slowThreshold time.Duration) gormlogger.Interface {
	return &gormLogger{log: log, slowThreshold: slowThreshold}
}

func (l *gormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	// Level filtering is handled by zerolog.
	return l
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	l.log.Info(msg, map[string]interface{}{"args": args})
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	l.log.Warn(msg, map[string]interface{}{"args": args})
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	l.log.Error(msg, map[string]interface{}{"args": args})
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := map[string]interface{}{
		"elapsed_ms": elapsed.Milliseconds(),
		"rows":       rows,
		"sql":        sql,
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.log.WithError(err).Error("Query failed", fields)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		l.log.Warn("Slow query", fields)
	default:
		l.log.Debug("Query", fields)
	}
}
