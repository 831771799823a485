package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogger adapts zerolog to GORM's logger.Interface. Every statement is
// logged through the logger attached to the query context (zerolog.Ctx), so
// SQL lines carry the request's correlation id. Without an attached logger
// nothing is written.
type gormLogger struct{}

// LogMode is a no-op; level filtering is handled by zerolog.
func (l gormLogger) LogMode(logger.LogLevel) logger.Interface { return l }

// Info logs informational messages from GORM.
func (l gormLogger) Info(ctx context.Context, msg string, args ...any) {
	zerolog.Ctx(ctx).Info().Msg(fmt.Sprintf(msg, args...))
}

// Warn logs warning messages from GORM.
func (l gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	zerolog.Ctx(ctx).Warn().Msg(fmt.Sprintf(msg, args...))
}

// Error logs error messages from GORM.
func (l gormLogger) Error(ctx context.Context, msg string, args ...any) {
	zerolog.Ctx(ctx).Error().Msg(fmt.Sprintf(msg, args...))
}

// maxSQLLength is the maximum length of a SQL string in debug logs before
// it gets truncated with an ellipsis.
const maxSQLLength = 200

// truncateSQL shortens a SQL string for readable log output, replacing the
// middle with "..." when it exceeds maxSQLLength.
func truncateSQL(sql string) string {
	if len(sql) <= maxSQLLength {
		return sql
	}
	half := (maxSQLLength - 3) / 2
	return sql[:half] + "..." + sql[len(sql)-half:]
}

// Trace is called by GORM after every SQL operation. ErrRecordNotFound is the
// normal "no rows" result of First/Take and is logged at debug level.
func (l gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	log := zerolog.Ctx(ctx)
	elapsed := time.Since(begin)

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		sql, rows := fc()
		log.Error().
			Err(err).
			Str("sql", truncateSQL(sql)).
			Int64("rows", rows).
			Dur("duration", elapsed).
			Msg("gorm query error")
		return
	}

	if log.GetLevel() > zerolog.DebugLevel {
		return
	}

	sql, rows := fc()
	log.Debug().
		Str("sql", truncateSQL(sql)).
		Int64("rows", rows).
		Dur("duration", elapsed).
		Msg("gorm query")
}
