package logging

import (
	"sync"
	"testing"

	"go.uber.org/zap/zapcore"
)

// resetLoggerForTest reinitializes the shared logger so tests can capture output.
func resetLoggerForTest() {
	loggerOnce = sync.Once{}
	baseLogger = nil
	loggerErr = nil
}

func TestLoggerInitializes(t *testing.T) {
	resetLoggerForTest()
	if Logger() == nil {
		t.Fatal("expected non-nil logger")
	}
	if err := Err(); err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}
}

func TestEncodeSeverityMapsLevels(t *testing.T) {
	tests := []struct {
		level zapcore.Level
		want  string
	}{
		{zapcore.DebugLevel, "DEBUG"},
		{zapcore.InfoLevel, "INFO"},
		{zapcore.WarnLevel, "WARNING"},
		{zapcore.ErrorLevel, "ERROR"},
		{zapcore.DPanicLevel, "CRITICAL"},
		{zapcore.PanicLevel, "ALERT"},
		{zapcore.FatalLevel, "EMERGENCY"},
	}
	for _, tc := range tests {
		enc := &sliceArrayEncoder{}
		encodeSeverity(tc.level, enc)
		if len(enc.elems) != 1 || enc.elems[0] != tc.want {
			t.Fatalf("level %v: expected %q, got %v", tc.level, tc.want, enc.elems)
		}
	}
}

// sliceArrayEncoder is a minimal PrimitiveArrayEncoder capturing appended strings.
type sliceArrayEncoder struct {
	zapcore.PrimitiveArrayEncoder
	elems []string
}

func (e *sliceArrayEncoder) AppendString(s string) { e.elems = append(e.elems, s) }
