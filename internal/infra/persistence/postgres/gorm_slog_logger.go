package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"exposure/config"
	"exposure/internal/errors"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

// gormSlogLogger routes GORM output to the process logger. Failed statements
// are logged at error level, slow ones at warn, and every statement only in
// debug mode.
type gormSlogLogger struct {
	logger        *slog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newGormSlogLogger(base *slog.Logger, cfg *config.Config) gormlogger.Interface {
	l := &gormSlogLogger{
		level:         gormlogger.Warn,
		slowThreshold: defaultSlowQueryThreshold,
	}
	if base != nil {
		l.logger = base.With(slog.String("component", "gorm"))
	}
	if cfg != nil {
		if cfg.Env.Debug {
			l.level = gormlogger.Info
		}
		if cfg.Postgres != nil && cfg.Postgres.SlowQueryThreshold > 0 {
			l.slowThreshold = cfg.Postgres.SlowQueryThreshold
		}
	}

	return l
}

func (l *gormSlogLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logf(ctx, gormlogger.Info, slog.LevelInfo, msg, args)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logf(ctx, gormlogger.Warn, slog.LevelWarn, msg, args)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logf(ctx, gormlogger.Error, slog.LevelError, msg, args)
}

func (l *gormSlogLogger) logf(ctx context.Context, threshold gormlogger.LogLevel, level slog.Level, msg string, args []any) {
	if l.logger == nil || l.level < threshold {
		return
	}

	l.logger.LogAttrs(ctx, level, "[Postgres] "+fmt.Sprintf(msg, args...))
}

// Trace is called by GORM after every statement.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logger == nil || l.level == gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var (
		level slog.Level
		msg   string
		extra slog.Attr
	)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		level, msg, extra = slog.LevelError, "[Postgres] Statement failed", slog.Any("error", err)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		level, msg, extra = slog.LevelWarn, "[Postgres] Slow statement", slog.Duration("threshold", l.slowThreshold)
	case l.level >= gormlogger.Info:
		level, msg = slog.LevelInfo, "[Postgres] Statement"
	default:
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
	if extra.Key != "" {
		attrs = append(attrs, extra)
	}

	l.logger.LogAttrs(ctx, level, msg, attrs...)
}
