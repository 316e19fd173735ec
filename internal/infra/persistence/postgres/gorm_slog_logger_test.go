package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"exposure/config"
	"exposure/internal/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newBufferedGormLogger(cfg *config.Config) (*bytes.Buffer, gormlogger.Interface) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return &buf, newGormSlogLogger(base, cfg)
}

func statement() (string, int64) {
	return "SELECT * FROM subscriptions", 3
}

func TestGormSlogLogger_Trace(t *testing.T) {
	cfg := &config.Config{Postgres: &config.PostgresConfig{SlowQueryThreshold: 10 * time.Millisecond}}

	tests := []struct {
		name    string
		debug   bool
		begin   time.Time
		err     error
		want    string
		wantNot string
	}{
		{"failed statement", false, time.Now(), errors.New("boom"), "Statement failed", ""},
		{"record not found is quiet", false, time.Now(), gorm.ErrRecordNotFound, "", "Statement"},
		{"slow statement", false, time.Now().Add(-time.Second), nil, "Slow statement", ""},
		{"fast statement outside debug", false, time.Now(), nil, "", "Statement"},
		{"fast statement in debug", true, time.Now(), nil, "msg=\"[Postgres] Statement\"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *cfg
			c.Env.Debug = tt.debug
			buf, l := newBufferedGormLogger(&c)

			l.Trace(context.Background(), tt.begin, statement, tt.err)

			out := buf.String()
			if tt.want != "" {
				assert.Contains(t, out, tt.want)
				assert.Contains(t, out, "rows=3")
				assert.Contains(t, out, "component=gorm")
			}
			if tt.wantNot != "" {
				assert.NotContains(t, out, tt.wantNot)
			}
		})
	}
}

func TestGormSlogLogger_LogModeSilent(t *testing.T) {
	buf, l := newBufferedGormLogger(&config.Config{})

	l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), statement, errors.New("boom"))
	l.LogMode(gormlogger.Silent).Error(context.Background(), "migration failed: %s", "x")
	assert.Empty(t, buf.String())

	l.Warn(context.Background(), "pool at %d%%", 90)
	assert.Contains(t, buf.String(), "pool at 90%")
}
