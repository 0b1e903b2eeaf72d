// Package zap adapts a *zap.Logger to paramwire.Logger.
package zap

import (
	"sort"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/paramwire"
)

var _ paramwire.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New names the logger "paramwire" so its entries are easy to filter.
func New(l *zap.Logger) ZapLogger { return ZapLogger{L: l.Named("paramwire")} }

func (z ZapLogger) Debug(msg string, f paramwire.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f paramwire.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f paramwire.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f paramwire.Fields) { z.L.Error(msg, zf(f)...) }

// zf converts fields in key order so identical events render identically.
func zf(f paramwire.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		switch v := f[k].(type) {
		case error:
			out = append(out, zap.NamedError(k, v))
		default:
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}
