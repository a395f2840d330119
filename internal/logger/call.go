package logger

import "time"

// Call tracks one MCP tool invocation from start to finish.
type Call struct {
	log   *Logger
	start time.Time
}

// StartCall returns a Call whose logger carries the tool name.
func (l *Logger) StartCall(tool string) *Call {
	return &Call{
		log:   l.With().Str("tool", tool).Logger(),
		start: time.Now(),
	}
}

// Logger returns the call-scoped logger.
func (c *Call) Logger() *Logger {
	return c.log
}

// Elapsed is the time since the call started.
func (c *Call) Elapsed() time.Duration {
	return time.Since(c.start)
}

// Done records a successful call and the size of its text result.
func (c *Call) Done(bytes int) {
	c.log.zlog.Debug().
		Dur("elapsed", c.Elapsed()).
		Int("bytes", bytes).
		Msg("tool call finished")
}

// Failed records a failed call with the error's kind.
func (c *Call) Failed(err error, kind string) {
	c.log.zlog.Error().
		Err(err).
		Str("kind", kind).
		Dur("elapsed", c.Elapsed()).
		Msg("tool call failed")
}

// Request describes one served HTTP request.
type Request struct {
	ID      string
	Method  string
	Path    string
	Status  int
	Bytes   int
	Elapsed time.Duration
}

// Request logs a served HTTP request. 5xx responses are logged as errors.
func (l *Logger) Request(r Request) {
	event := l.zlog.Info()
	if r.Status >= 500 {
		event = l.zlog.Error()
	}
	event.
		Str("request_id", r.ID).
		Str("method", r.Method).
		Str("path", r.Path).
		Int("status", r.Status).
		Int("bytes", r.Bytes).
		Dur("elapsed", r.Elapsed).
		Msg("http request")
}
