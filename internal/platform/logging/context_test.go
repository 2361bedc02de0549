package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedContext(level zapcore.LevelEnabler, opts ...zap.Option) (context.Context, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return contextWithLogger(context.Background(), zap.New(core, opts...)), recorded
}

func fieldMap(entry observer.LoggedEntry) map[string]zap.Field {
	m := make(map[string]zap.Field, len(entry.Context))
	for _, f := range entry.Context {
		m[f.Key] = f
	}
	return m
}

func TestTraceIDFromContext(t *testing.T) {
	if got := TraceIDFromContext(context.Background()); got != nil {
		t.Fatalf("expected nil trace ID on a bare context, got %v", got)
	}

	ctx := contextWithTraceID(context.Background(), "trace-abc")
	if got := TraceIDFromContext(ctx); got == nil || *got != "trace-abc" {
		t.Fatalf("expected trace-abc, got %v", got)
	}

	if ctx := contextWithTraceID(context.Background(), ""); TraceIDFromContext(ctx) != nil {
		t.Fatal("empty trace ID must not be stored")
	}
}

func TestLogHelpersWriteAtExpectedLevel(t *testing.T) {
	tests := []struct {
		name  string
		log   func(ctx context.Context)
		level zapcore.Level
		msg   string
	}{
		{"info", func(ctx context.Context) { LogInfo(ctx, "info message", zap.String("k", "v")) },
			zapcore.InfoLevel, "info message"},
		{"warn", func(ctx context.Context) { LogWarn(ctx, "warn message", zap.String("k", "v")) },
			zapcore.WarnLevel, "warn message"},
		{"error", func(ctx context.Context) { LogError(ctx, "error message", errors.New("boom"), zap.String("k", "v")) },
			zapcore.ErrorLevel, "error message"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx, recorded := observedContext(zapcore.DebugLevel)
			tc.log(ctx)

			entries := recorded.All()
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			if entries[0].Message != tc.msg || entries[0].Level != tc.level {
				t.Fatalf("got %q at %s, want %q at %s",
					entries[0].Message, entries[0].Level, tc.msg, tc.level)
			}
			if f, ok := fieldMap(entries[0])["k"]; !ok || f.String != "v" {
				t.Fatalf("caller field missing: %+v", entries[0].Context)
			}
		})
	}
}

func TestLogErrorFieldHandling(t *testing.T) {
	ctx, recorded := observedContext(zapcore.ErrorLevel)

	LogError(ctx, "with error", errors.New("boom"))
	LogError(ctx, "without error", nil)

	entries := recorded.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if f, ok := fieldMap(entries[0])["error"]; !ok || f.Type != zapcore.ErrorType {
		t.Fatalf("expected error field when err is non-nil: %+v", entries[0].Context)
	}
	if _, ok := fieldMap(entries[1])["error"]; ok {
		t.Fatal("nil err must not produce an error field")
	}
}

func TestLogFatalAppendsErrorField(t *testing.T) {
	ctx, recorded := observedContext(zapcore.InfoLevel, zap.WithFatalHook(zapcore.WriteThenPanic))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic from the fatal hook")
		}
		entries := recorded.All()
		if len(entries) != 1 || entries[0].Level != zapcore.FatalLevel {
			t.Fatalf("expected one fatal entry, got %+v", entries)
		}
		if f, ok := fieldMap(entries[0])["error"]; !ok || f.Type != zapcore.ErrorType {
			t.Fatalf("expected error field: %+v", entries[0].Context)
		}
	}()

	LogFatal(ctx, "fatal failure", errors.New("boom"))
}

func TestLoggerFromContextFallbacks(t *testing.T) {
	var nilCtx context.Context
	if LoggerFromContext(nilCtx) == nil {
		t.Fatal("nil context must yield the global logger")
	}

	ctx := context.WithValue(context.Background(), ctxLoggerKey{}, (*zap.Logger)(nil))
	if LoggerFromContext(ctx) == nil {
		t.Fatal("nil stored logger must yield the global logger")
	}

	if TraceIDFromContext(nilCtx) != nil {
		t.Fatal("nil context must yield no trace ID")
	}
}

func TestContextHelpersAcceptNilContext(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	var nilCtx context.Context
	ctx := contextWithLogger(nilCtx, logger)
	LoggerFromContext(ctx).Info("test")
	if len(recorded.All()) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(recorded.All()))
	}

	ctx = contextWithTraceID(nilCtx, "trace-123")
	if got := TraceIDFromContext(ctx); got == nil || *got != "trace-123" {
		t.Fatalf("expected trace-123, got %v", got)
	}
}
