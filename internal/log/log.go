package log

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Level ordering: debug < info < warn < error. Entries below the configured
// threshold are neither buffered nor printed.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

const bufferCap = 100

// slowOpThreshold promotes a duration log to warn.
const slowOpThreshold = 1000 * time.Millisecond

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// ParseLevel maps a LOG_LEVEL string to a Level; unknown values fall back to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

type Entry struct {
	TS     string         `json:"ts"`
	Level  string         `json:"level"`
	Action string         `json:"action"`
	ReqID  string         `json:"req_id,omitempty"`
	IP     string         `json:"ip,omitempty"`
	Method string         `json:"method,omitempty"`
	Path   string         `json:"path,omitempty"`
	Status int            `json:"status,omitempty"`
	Err    string         `json:"err,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

// Logger records leveled events into a fixed-capacity FIFO buffer and mirrors
// them to the console. In development everything recorded is printed; otherwise
// only warn and error lines reach the console. Logging never fails.
type Logger struct {
	mu        sync.Mutex
	threshold Level
	dev       bool
	buf       []Entry
}

func New(level Level, env string) *Logger {
	return &Logger{threshold: level, dev: env == "development"}
}

// SetLevel changes the recording threshold at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.threshold = level
	l.mu.Unlock()
}

func (l *Logger) write(level Level, c *fiber.Ctx, action string, err error, fields map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.threshold {
		return
	}
	e := Entry{
		TS:     time.Now().UTC().Format(time.RFC3339Nano),
		Level:  level.String(),
		Action: action,
		Fields: fields,
	}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
	}
	if err != nil {
		e.Err = err.Error()
	}

	if len(l.buf) == bufferCap {
		l.buf = l.buf[1:]
	}
	l.buf = append(l.buf, e)

	if l.dev || level >= LevelWarn {
		b, _ := json.Marshal(e)
		log.Println(string(b))
	}
}

func (l *Logger) Debug(c *fiber.Ctx, action string, fields map[string]any) {
	l.write(LevelDebug, c, action, nil, fields)
}

func (l *Logger) Info(c *fiber.Ctx, action string, fields map[string]any) {
	l.write(LevelInfo, c, action, nil, fields)
}

// Audit marks user-visible state changes; recorded at info.
func (l *Logger) Audit(c *fiber.Ctx, action string, fields map[string]any) {
	l.write(LevelInfo, c, action, nil, fields)
}

// Security marks denied or suspicious requests; recorded at warn.
func (l *Logger) Security(c *fiber.Ctx, action string, fields map[string]any) {
	l.write(LevelWarn, c, action, nil, fields)
}

func (l *Logger) Warn(c *fiber.Ctx, action string, fields map[string]any) {
	l.write(LevelWarn, c, action, nil, fields)
}

func (l *Logger) Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	l.write(LevelError, c, action, err, fields)
}

// APICall records an outbound/inbound API invocation at debug.
func (l *Logger) APICall(action, method, path string, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["method"] = method
	fields["path"] = path
	l.write(LevelDebug, nil, action, nil, fields)
}

// APIResponse derives severity from the status code: >=400 error, >=300 warn,
// else debug.
func (l *Logger) APIResponse(action string, status int, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["status"] = status
	level := LevelDebug
	switch {
	case status >= 400:
		level = LevelError
	case status >= 300:
		level = LevelWarn
	}
	l.write(level, nil, action, nil, fields)
}

// UserAction records something a signed-in user did.
func (l *Logger) UserAction(userID, action string, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["user_id"] = userID
	l.write(LevelInfo, nil, action, nil, fields)
}

// Duration records how long an operation took; slow operations (>1s) are
// promoted to warn.
func (l *Logger) Duration(action string, took time.Duration, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["duration_ms"] = took.Milliseconds()
	level := LevelDebug
	if took > slowOpThreshold {
		level = LevelWarn
	}
	l.write(level, nil, action, nil, fields)
}

// RecentLogs returns up to n of the most recent buffered entries in
// chronological order.
func (l *Logger) RecentLogs(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n > len(l.buf) {
		n = len(l.buf)
	}
	out := make([]Entry, n)
	copy(out, l.buf[len(l.buf)-n:])
	return out
}
