// Package term renders alerts on a terminal. It is the interactive
// counterpart to the alerts.Noop sink: dialogs become styled lines and
// confirmation becomes a y/n prompt on stdin.
package term

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Alerter writes alerts to out and reads confirmations from in.
type Alerter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer

	loadingOpen bool
}

// New builds a terminal alerter, typically over os.Stdin and os.Stdout.
func New(in io.Reader, out io.Writer) *Alerter {
	return &Alerter{in: bufio.NewReader(in), out: out}
}

func (a *Alerter) line(prefix, title, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if title != "" {
		fmt.Fprintf(a.out, "%s %s: %s\n", prefix, title, message)
		return
	}
	fmt.Fprintf(a.out, "%s %s\n", prefix, message)
}

func (a *Alerter) Success(title, message string) { a.line("[ok]", title, message) }
func (a *Alerter) Error(title, message string)   { a.line("[error]", title, message) }
func (a *Alerter) Warning(title, message string) { a.line("[warn]", title, message) }
func (a *Alerter) Info(title, message string)    { a.line("[info]", title, message) }

// Confirm prints the question and blocks for a y/n answer. Anything
// other than an explicit yes counts as no.
func (a *Alerter) Confirm(title, message string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.out, "%s %s [y/N]: ", title, message)
	answer, err := a.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// Loading prints a single progress line; CloseLoading ends it. There is
// no spinner, a terminal session does not need one.
func (a *Alerter) Loading(title, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loadingOpen = true
	fmt.Fprintf(a.out, "... %s: %s\n", title, message)
}

func (a *Alerter) CloseLoading() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loadingOpen {
		a.loadingOpen = false
		fmt.Fprintln(a.out, "... done")
	}
}

func (a *Alerter) ToastSuccess(message string) { a.line("[ok]", "", message) }
func (a *Alerter) ToastError(message string)   { a.line("[error]", "", message) }
