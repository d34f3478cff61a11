package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var levelNames = [...]string{Debug: "debug", Info: "info", Warn: "warn", Error: "error"}

// ParseLevel tolera mayúsculas y el alias "warning". Lo desconocido cae en info.
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return Warn
	}
	for lvl, name := range levelNames {
		if name == s {
			return Level(lvl)
		}
	}
	return Info
}

func (l Level) String() string {
	if l < Debug || l > Error {
		return levelNames[Info]
	}
	return levelNames[l]
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

type Logger interface {
	With(fields map[string]any) Logger

	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

type Options struct {
	Level  Level
	Format Format
	App    string

	// Output opcional; por defecto stdout. El CLI escribe a stderr.
	Output io.Writer
	// Now opcional, para timestamps fijos en tests.
	Now func() time.Time
}

// sink es compartido por un logger y todos sus hijos creados con With.
type sink struct {
	mu     sync.Mutex
	out    io.Writer
	level  Level
	encode func(map[string]any) []byte
	now    func() time.Time
}

func (s *sink) write(entry map[string]any) {
	line := s.encode(entry)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.out.Write(append(line, '\n'))
}

// StdLogger es el logger estructurado del proyecto: campos como map, salida text o json.
type StdLogger struct {
	sink *sink
	base map[string]any
}

func New(opts Options) Logger {
	s := &sink{
		out:    opts.Output,
		level:  opts.Level,
		encode: encodeText,
		now:    opts.Now,
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.Format == FormatJSON {
		s.encode = encodeJSON
	}

	base := map[string]any{}
	if app := strings.TrimSpace(opts.App); app != "" {
		base["app"] = app
	}
	return &StdLogger{sink: s, base: base}
}

// NewFromEnv crea logger desde env:
// - LOG_LEVEL=debug|info|warn|error (default info)
// - LOG_FORMAT=text|json (default text)
// - APP_NAME=pet-care-tasks (opcional)
func NewFromEnv() Logger {
	return New(Options{
		Level:  ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    os.Getenv("APP_NAME"),
	})
}

// Nop descarta todo. Útil en tests y como default de componentes.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (n nopLogger) With(map[string]any) Logger { return n }
func (nopLogger) Debug(string, map[string]any) {}
func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}

func (l *StdLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	base := make(map[string]any, len(l.base)+len(fields))
	mergeFields(base, l.base)
	mergeFields(base, fields)
	return &StdLogger{sink: l.sink, base: base}
}

func (l *StdLogger) Debug(msg string, fields map[string]any) { l.log(Debug, msg, fields) }
func (l *StdLogger) Info(msg string, fields map[string]any)  { l.log(Info, msg, fields) }
func (l *StdLogger) Warn(msg string, fields map[string]any)  { l.log(Warn, msg, fields) }
func (l *StdLogger) Error(msg string, fields map[string]any) { l.log(Error, msg, fields) }

func (l *StdLogger) log(lvl Level, msg string, fields map[string]any) {
	if lvl < l.sink.level {
		return
	}

	entry := make(map[string]any, len(l.base)+len(fields)+3)
	mergeFields(entry, l.base)
	mergeFields(entry, fields)
	// las claves reservadas no se pisan con campos
	entry["ts"] = l.sink.now().Format(time.RFC3339Nano)
	entry["level"] = lvl.String()
	entry["msg"] = msg

	l.sink.write(entry)
}

// mergeFields copia src en dst; descarta keys vacías y aplana errores a texto.
func mergeFields(dst, src map[string]any) {
	for k, v := range src {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		dst[k] = v
	}
}

func encodeJSON(entry map[string]any) []byte {
	b, err := json.Marshal(entry)
	if err != nil {
		return []byte(fmt.Sprintf(`{"level":"error","msg":"log encode failed","error":%q}`, err.Error()))
	}
	return b
}

// encodeText ordena las keys para que la salida sea estable.
func encodeText(entry map[string]any) []byte {
	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%v", k, entry[k])
	}
	return []byte(sb.String())
}
