package internal

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the global syntax tracer. It is a no-op until a client installs
// a concrete tracer, e.g. gtrace.SyntaxTracer = gologadapter.New().
func T() tracing.Trace {
	return gtrace.SyntaxTracer
}
