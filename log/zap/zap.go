package zap

import (
	"github.com/unkn0wn-root/swkit"
	"go.uber.org/zap"
)

// ZapLogger adapts a *zap.Logger to swkit.Logger.
type ZapLogger struct{ L *zap.Logger }

var _ swkit.Logger = ZapLogger{}

func (z ZapLogger) Debug(msg string, f swkit.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f swkit.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f swkit.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f swkit.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f swkit.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
