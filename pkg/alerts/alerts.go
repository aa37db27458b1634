// Package alerts defines the only channel through which the core surfaces
// success, failure and confirmation to a human. The core treats the
// implementation as opaque; anything satisfying Alerter is acceptable.
package alerts

// Alerter is the boundary the environment must provide.
type Alerter interface {
	// Fire-and-forget dialogs.
	Success(title, message string)
	Error(title, message string)
	Warning(title, message string)
	Info(title, message string)

	// Confirm blocks until the user answers yes or no.
	Confirm(title, message string) bool

	// Loading shows a dismissible progress indicator until CloseLoading.
	Loading(title, message string)
	CloseLoading()

	// Non-blocking toast variants.
	ToastSuccess(message string)
	ToastError(message string)
}

// Noop discards every alert. Useful as a default for headless use.
type Noop struct{}

func (Noop) Success(string, string) {}
func (Noop) Error(string, string)   {}
func (Noop) Warning(string, string) {}
func (Noop) Info(string, string)    {}
func (Noop) Confirm(string, string) bool {
	return true
}
func (Noop) Loading(string, string) {}
func (Noop) CloseLoading()          {}
func (Noop) ToastSuccess(string)    {}
func (Noop) ToastError(string)      {}
