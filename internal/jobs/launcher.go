package jobs

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// Handle observes and controls a launched child process.
type Handle interface {
	// Alive polls liveness without blocking.
	Alive() bool
	// Terminate requests graceful termination and waits up to timeout
	// for the process to exit.
	Terminate(timeout time.Duration) error
}

// Launcher spawns a detached child process with stdout and stderr both
// redirected to the given log file.
type Launcher interface {
	Launch(argv []string, logFile *os.File) (Handle, error)
}

// ExecLauncher launches real OS processes in their own process group so
// signals aimed at the web server do not reach the generators.
type ExecLauncher struct {
	// Dir is the child's working directory; empty means inherit.
	Dir string
}

func (l ExecLauncher) Launch(argv []string, logFile *os.File) (Handle, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty argv")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Dir = l.Dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	h := &execHandle{cmd: cmd, done: make(chan struct{})}
	go func() {
		h.waitErr = cmd.Wait()
		close(h.done)
	}()
	return h, nil
}

type execHandle struct {
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

func (h *execHandle) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

func (h *execHandle) Terminate(timeout time.Duration) error {
	if !h.Alive() {
		return nil
	}
	if err := h.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return err
	}

	select {
	case <-h.done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("process %d did not exit within %s", h.cmd.Process.Pid, timeout)
	}
}
