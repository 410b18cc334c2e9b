// Package logfields holds the canonical slog keys used across packages.
package logfields

import "log/slog"

const (
	KeyTitle      = "title"
	KeyPriority   = "priority"
	KeyOp         = "op"
	KeyMode       = "mode"
	KeyRows       = "rows"
	KeyPolicy     = "policy"
	KeyRequestID  = "request_id"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyAddr       = "addr"
	KeyFile       = "file"
)

func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func Priority(p string) slog.Attr     { return slog.String(KeyPriority, p) }
func Op(op string) slog.Attr          { return slog.String(KeyOp, op) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func Rows(n int) slog.Attr            { return slog.Int(KeyRows, n) }
func Policy(p string) slog.Attr       { return slog.String(KeyPolicy, p) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
