// Package clog is the text handler for apex/log used by every command.
package clog

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/apex/log"
)

type Handler struct {
	mu     sync.Mutex
	Writer io.Writer
	// Now stamps each line; tests pin it.
	Now func() time.Time
}

var levelToStrings = [...]string{
	log.DebugLevel: "DEBUG",
	log.InfoLevel:  "INFO",
	log.WarnLevel:  "WARN",
	log.ErrorLevel: "ERROR",
	log.FatalLevel: "FATAL",
}

// field used for sorting.
type field struct {
	Name  string
	Value interface{}
}

// by sorts fields by name.
type byName []field

func (a byName) Len() int           { return len(a) }
func (a byName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byName) Less(i, j int) bool { return a[i].Name < a[j].Name }

func NewHandler(w io.Writer) *Handler {
	return &Handler{Writer: w, Now: time.Now}
}

func (h *Handler) SetOutput(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Writer = w
}

func (h *Handler) HandleLog(e *log.Entry) error {
	level := "?"
	if int(e.Level) >= 0 && int(e.Level) < len(levelToStrings) {
		level = levelToStrings[e.Level]
	}

	var fields []field
	for k, v := range e.Fields {
		fields = append(fields, field{k, v})
	}
	sort.Sort(byName(fields))

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, "%5s %s %-25s", level, h.Now().Format(time.DateTime), e.Message)
	for _, f := range fields {
		_, _ = fmt.Fprintf(&b, " %s=%v", f.Name, f.Value)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.Writer, b.String())
	return err
}

// Setup installs a Handler writing to w as the global apex/log handler and sets
// the level from its name.
func Setup(w io.Writer, level string) (*Handler, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	h := NewHandler(w)
	log.SetHandler(h)
	log.SetLevel(lvl)
	return h, nil
}
