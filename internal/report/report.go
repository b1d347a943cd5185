// Package report holds the output channels of a checkout: a Display for receipts
// and shipment notices, and a Reporter for failures.
package report

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Display receives receipt and manifest lines in call order
type Display interface {
	WriteLine(text string)
}

// Reporter receives failure messages. Implementations must not panic.
type Reporter interface {
	ReportError(message string)
}

// WriterDisplay prints every line to an io.Writer
type WriterDisplay struct {
	w io.Writer
}

func NewWriterDisplay(w io.Writer) *WriterDisplay {
	return &WriterDisplay{w: w}
}

func (d *WriterDisplay) WriteLine(text string) {
	fmt.Fprintln(d.w, text)
}

// WriterReporter prints every failure to an io.Writer, usually stderr
type WriterReporter struct {
	w io.Writer
}

func NewWriterReporter(w io.Writer) *WriterReporter {
	return &WriterReporter{w: w}
}

func (r *WriterReporter) ReportError(message string) {
	fmt.Fprintln(r.w, message)
}

// ZapReporter logs failures at error level
type ZapReporter struct {
	logger *zap.Logger
}

func NewZapReporter(logger *zap.Logger) *ZapReporter {
	return &ZapReporter{logger: logger}
}

func (r *ZapReporter) ReportError(message string) {
	r.logger.Error("checkout failure", zap.String("reason", message))
}

// ZapDisplay logs display lines at info level
type ZapDisplay struct {
	logger *zap.Logger
}

func NewZapDisplay(logger *zap.Logger) *ZapDisplay {
	return &ZapDisplay{logger: logger}
}

func (d *ZapDisplay) WriteLine(text string) {
	if text == "" {
		return
	}
	d.logger.Info("display", zap.String("line", text))
}

// Recorder keeps everything written to it. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	lines  []string
	errors []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) WriteLine(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, text)
}

func (r *Recorder) ReportError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

// Lines returns a copy of the display lines
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Errors returns a copy of the reported failures
func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
	r.errors = nil
}

// Multi fans a line out to several displays
type Multi []Display

func (m Multi) WriteLine(text string) {
	for _, d := range m {
		d.WriteLine(text)
	}
}

// Reporters fans a failure out to several reporters
type Reporters []Reporter

func (m Reporters) ReportError(message string) {
	for _, r := range m {
		r.ReportError(message)
	}
}
