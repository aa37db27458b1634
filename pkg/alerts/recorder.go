package alerts

import "sync"

// Call is one recorded alert invocation.
type Call struct {
	Kind    string // "success", "error", "warning", "info", "confirm", "loading", "close", "toast-success", "toast-error"
	Title   string
	Message string
}

// Recorder is an Alerter for tests: it captures every call and answers
// confirmations from a scripted queue (defaulting to yes when empty).
type Recorder struct {
	mu             sync.Mutex
	Calls          []Call
	ConfirmAnswers []bool
}

func (r *Recorder) record(kind, title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, Call{Kind: kind, Title: title, Message: message})
}

func (r *Recorder) Success(title, message string) { r.record("success", title, message) }
func (r *Recorder) Error(title, message string)   { r.record("error", title, message) }
func (r *Recorder) Warning(title, message string) { r.record("warning", title, message) }
func (r *Recorder) Info(title, message string)    { r.record("info", title, message) }

func (r *Recorder) Confirm(title, message string) bool {
	r.record("confirm", title, message)
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ConfirmAnswers) == 0 {
		return true
	}
	answer := r.ConfirmAnswers[0]
	r.ConfirmAnswers = r.ConfirmAnswers[1:]
	return answer
}

func (r *Recorder) Loading(title, message string) { r.record("loading", title, message) }
func (r *Recorder) CloseLoading()                 { r.record("close", "", "") }
func (r *Recorder) ToastSuccess(message string)   { r.record("toast-success", "", message) }
func (r *Recorder) ToastError(message string)     { r.record("toast-error", "", message) }

// Kinds lists the recorded call kinds in order.
func (r *Recorder) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		kinds[i] = c.Kind
	}
	return kinds
}

// Has reports whether any call of the given kind was recorded.
func (r *Recorder) Has(kind string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.Calls {
		if c.Kind == kind {
			return true
		}
	}
	return false
}
