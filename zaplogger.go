// zaplogger.go: optional structured-logging backend for Logger.
//
// Part of the refbitcache package, so the package always links zap, but
// the cache only logs through it when a caller constructs a ZapLogger
// and passes it via WithLogger; the default Logger is NoOpLogger.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package refbitcache

import "go.uber.org/zap"

// ZapLogger adapts a *zap.Logger to the Logger interface, converting
// the cache's variadic key-value pairs into zap.Any fields.
type ZapLogger struct {
	l *zap.Logger
}

// NewZapLogger wraps l. If l is nil, zap.NewNop() is used.
func NewZapLogger(l *zap.Logger) ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return ZapLogger{l: l}
}

func (z ZapLogger) Debug(msg string, keyvals ...interface{}) {
	z.l.Debug(msg, fields(keyvals)...)
}

func (z ZapLogger) Info(msg string, keyvals ...interface{}) {
	z.l.Info(msg, fields(keyvals)...)
}

func (z ZapLogger) Warn(msg string, keyvals ...interface{}) {
	z.l.Warn(msg, fields(keyvals)...)
}

func (z ZapLogger) Error(msg string, keyvals ...interface{}) {
	z.l.Error(msg, fields(keyvals)...)
}

// fields converts a flat key,value,key,value... slice into zap.Fields.
// An odd trailing key with no value is logged under "extra" rather than
// dropped, so a caller mistake doesn't silently lose data.
func fields(keyvals []interface{}) []zap.Field {
	n := len(keyvals) / 2
	out := make([]zap.Field, 0, n+1)
	i := 0
	for ; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = "field"
		}
		out = append(out, zap.Any(key, keyvals[i+1]))
	}
	if i < len(keyvals) {
		out = append(out, zap.Any("extra", keyvals[i]))
	}
	return out
}
