package graph

// Mode selects what kind of consumer an evaluation pass feeds. It never
// changes scheduling order, only what work functions choose to compute.
type Mode int

const (
	// ModeInteractive is the default mode for live, user-facing updates.
	ModeInteractive Mode = iota
	// ModePreview trades accuracy for speed.
	ModePreview
	// ModeBatch is for full-quality, non-interactive output.
	ModeBatch
)

// String returns the mode's name for logs.
func (m Mode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModePreview:
		return "preview"
	case ModeBatch:
		return "batch"
	default:
		return "unknown"
	}
}

// EvalContext is the shared state handed to every work function during a
// pass. It is created once, reused across many passes, and carries nothing
// between them besides the mode and the time of the most recent pass.
type EvalContext struct {
	Mode Mode
	// Time is the scene time of the current pass, copied from the graph's
	// time source before any work runs.
	Time float64
}

// NewEvalContext creates an evaluation context for the given mode.
func NewEvalContext(mode Mode) *EvalContext {
	return &EvalContext{Mode: mode}
}

// Init re-initializes an existing context with a new mode, for callers that
// reuse one context across differently-purposed passes.
func (ec *EvalContext) Init(mode Mode) {
	ec.Mode = mode
}

// Scene is the collaborator a graph belongs to; it only needs to expose the
// current frame time.
type Scene interface {
	CurrentFrame() float64
}
