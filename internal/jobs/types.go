package jobs

import (
	"context"
	"time"
)

// Type identifies which generator a job runs.
type Type string

const (
	TypeWords     Type = "words"
	TypeSentences Type = "sentences"
)

// ParseType validates a job type coming in over the API.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeWords, TypeSentences:
		return Type(s), nil
	default:
		return "", &Error{Type: ErrUnknownJobType, Message: "unknown job type: " + s}
	}
}

// Job is the descriptor of the one supervised child process. The handle
// is owned exclusively by the Job; the supervisor only keeps a
// back-reference to the current Job.
type Job struct {
	ID        string    `json:"id"`
	JobType   Type      `json:"job_type"`
	LogPath   string    `json:"log_path"`
	StartedAt time.Time `json:"started_at"`

	handle Handle
}

// Running polls the process handle without blocking.
func (j *Job) Running() bool {
	return j != nil && j.handle != nil && j.handle.Alive()
}

// Record is one row of the job history.
type Record struct {
	ID        string     `json:"id"`
	JobType   Type       `json:"job_type"`
	LogPath   string     `json:"log_path"`
	StartedAt time.Time  `json:"started_at"`
	StoppedAt *time.Time `json:"stopped_at,omitempty"`
	Outcome   string     `json:"outcome,omitempty"`
}

// History receives job lifecycle events. Persistence failures are
// logged by the supervisor, never surfaced to the caller.
type History interface {
	RecordStart(ctx context.Context, record Record) error
	RecordStop(ctx context.Context, id string, stoppedAt time.Time, outcome string) error
}
