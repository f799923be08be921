// Package jobs supervises the single generator child process: start,
// stop, status and log tail. At most one job is live at any time.
package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rameshbaboov/french-vocabs/internal/config"
	"github.com/rameshbaboov/french-vocabs/pkg/file"
	"github.com/rameshbaboov/french-vocabs/pkg/log"
)

const defaultStopTimeout = 10 * time.Second

// Supervisor owns the single job slot. It is safe for concurrent use by
// the HTTP handlers.
type Supervisor struct {
	launcher Launcher
	binPath  string
	baseDir  string

	now         func() time.Time
	stopTimeout time.Duration
	history     History

	mu      sync.Mutex
	current *Job
}

type Option func(*Supervisor)

// WithClock overrides the supervisor's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Supervisor) {
		s.now = now
	}
}

// WithStopTimeout bounds how long Stop waits for the child to exit.
func WithStopTimeout(d time.Duration) Option {
	return func(s *Supervisor) {
		s.stopTimeout = d
	}
}

// WithHistory records job lifecycle events in the given store.
func WithHistory(history History) Option {
	return func(s *Supervisor) {
		s.history = history
	}
}

// NewSupervisor creates a supervisor that re-executes binPath with a
// generator subcommand. Relative directories in the job settings
// resolve against baseDir.
func NewSupervisor(launcher Launcher, binPath, baseDir string, opts ...Option) *Supervisor {
	s := &Supervisor{
		launcher:    launcher,
		binPath:     binPath,
		baseDir:     baseDir,
		now:         time.Now,
		stopTimeout: defaultStopTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// buildArgs maps a job type and the current settings onto the child's
// argument list. Every parameter is passed explicitly; the child never
// reads ambient state.
func (s *Supervisor) buildArgs(jobType Type, settings config.Settings) ([]string, error) {
	switch jobType {
	case TypeWords:
		return []string{
			s.binPath, "words",
			"--level", settings.WordsLevel,
			"--model", settings.WordsModel,
			"--batch-size", strconv.Itoa(settings.WordsBatchSize),
			"--outdir", s.resolve(settings.WordsOutDir),
		}, nil
	case TypeSentences:
		return []string{
			s.binPath, "sentences",
			"--level", settings.SentLevel,
			"--model", settings.SentModel,
			"--input-dir", s.resolve(settings.SentInputDir),
			"--output-dir", s.resolve(settings.SentOutputDir),
		}, nil
	default:
		return nil, &Error{Type: ErrUnknownJobType, Message: fmt.Sprintf("unknown job type: %s", jobType)}
	}
}

func (s *Supervisor) resolve(dir string) string {
	if filepath.IsAbs(dir) || s.baseDir == "" {
		return dir
	}
	return filepath.Join(s.baseDir, dir)
}

// Start launches a generator job. It fails with ErrAlreadyRunning while
// the current job's process is still alive; a job whose process has
// exited is replaced.
func (s *Supervisor) Start(jobType Type, settings config.Settings) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Running() {
		startsRejected.Inc()
		return nil, &Error{Type: ErrAlreadyRunning, Message: "a job is already running: " + s.current.ID}
	}

	argv, err := s.buildArgs(jobType, settings)
	if err != nil {
		return nil, err
	}

	logDir := s.resolve(settings.LogDir)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, &Error{Type: ErrLaunch, Message: "failed to create log directory", Cause: err}
	}

	startedAt := s.now()
	id := fmt.Sprintf("%s_%s", jobType, startedAt.Format("20060102-150405"))
	logPath := filepath.Join(logDir, id+".log")

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, &Error{Type: ErrLaunch, Message: "failed to open job log file", Cause: err}
	}
	fmt.Fprintf(logFile, "[%s] Starting job %s\n", startedAt.Format(time.RFC3339), id)

	handle, err := s.launcher.Launch(argv, logFile)
	// The child inherits the descriptor; the parent's copy closes either way.
	logFile.Close()
	if err != nil {
		return nil, &Error{Type: ErrLaunch, Message: "failed to launch job process", Cause: err}
	}

	job := &Job{
		ID:        id,
		JobType:   jobType,
		LogPath:   logPath,
		StartedAt: startedAt,
		handle:    handle,
	}
	s.current = job

	jobsStarted.WithLabelValues(string(jobType)).Inc()
	s.recordStart(job)
	log.Info("Started job %s (log: %s)", id, logPath)
	return job, nil
}

// Stop clears the job slot. Termination is best-effort: errors from the
// child are logged and swallowed, and the slot is cleared regardless.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := s.current
	if job == nil {
		return
	}

	outcome := "stopped"
	if job.handle.Alive() {
		if err := job.handle.Terminate(s.stopTimeout); err != nil {
			log.Warn("Job %s did not terminate cleanly: %v", job.ID, err)
			outcome = "abandoned"
		}
	} else {
		outcome = "exited"
	}

	s.current = nil
	jobsStopped.Inc()
	s.recordStop(job, outcome)
	log.Info("Cleared job %s (%s)", job.ID, outcome)
}

// Status returns the current Job, or nil when the slot is empty. The
// caller determines liveness via Job.Running.
func (s *Supervisor) Status() *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Tail returns the last maxLines lines of the current job's log, or
// empty text when there is no job or no log file yet.
func (s *Supervisor) Tail(maxLines int) string {
	s.mu.Lock()
	job := s.current
	s.mu.Unlock()

	if job == nil {
		return ""
	}
	text, err := file.TailLines(job.LogPath, maxLines)
	if err != nil {
		log.Error("Failed to read job log %s: %v", job.LogPath, err)
		return ""
	}
	return text
}

func (s *Supervisor) recordStart(job *Job) {
	if s.history == nil {
		return
	}
	record := Record{
		ID:        job.ID,
		JobType:   job.JobType,
		LogPath:   job.LogPath,
		StartedAt: job.StartedAt,
	}
	if err := s.history.RecordStart(context.Background(), record); err != nil {
		log.Error("Failed to record start of job %s: %v", job.ID, err)
	}
}

func (s *Supervisor) recordStop(job *Job, outcome string) {
	if s.history == nil {
		return
	}
	if err := s.history.RecordStop(context.Background(), job.ID, s.now(), outcome); err != nil {
		log.Error("Failed to record stop of job %s: %v", job.ID, err)
	}
}
