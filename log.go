package rebound

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Prog tags every diagnostic line.
const Prog = "rebound"

// NewLogger returns a logger writing lines of the form
//
//	rebound: message {"field": value}
//
// to w, without timestamps or levels.
func NewLogger(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "message",
		NameKey:          "logger",
		EncodeName:       tagEncoder,
		ConsoleSeparator: " ",
	})
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel)
	return zap.New(core).Named(Prog)
}

func tagEncoder(name string, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(name + ":")
}
