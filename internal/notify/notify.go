// Package notify models the transient notification surface shown to shoppers
// and admins after an action.
package notify

import "sync"

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier receives user-visible messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Message is a single recorded notification.
type Message struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Recorder collects notifications for one request.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(msg string) {
	r.add(LevelSuccess, msg)
}

func (r *Recorder) Error(msg string) {
	r.add(LevelError, msg)
}

func (r *Recorder) add(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Level: level, Message: msg})
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Success(string) {}
func (discard) Error(string)   {}
