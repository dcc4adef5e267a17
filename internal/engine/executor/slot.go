package executor

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

// spawnFailureStatus is reported when the callee could not be started.
const spawnFailureStatus = 127

// readChunk is the size of a single non-blocking pipe read.
const readChunk = 32 * 1024

// pipe is a unidirectional byte pipe whose read end is non-blocking.
type pipe struct {
	readFD int
	write  *os.File
}

func openPipe(name string) (pipe, error) {
	fds := make([]int, 2)
	if err := unix.Pipe2(fds, unix.O_CLOEXEC); err != nil {
		return pipe{}, zerr.Wrap(err, "failed to open "+name+" pipe")
	}
	if err := unix.SetNonblock(fds[0], true); err != nil {
		_ = unix.Close(fds[0])
		_ = unix.Close(fds[1])
		return pipe{}, zerr.Wrap(err, "failed to make "+name+" pipe non-blocking")
	}
	return pipe{readFD: fds[0], write: os.NewFile(uintptr(fds[1]), name)}, nil
}

// drain reads everything currently buffered in the pipe into buf.
func (p pipe) drain(buf *bytes.Buffer) {
	chunk := make([]byte, readChunk)
	for {
		n, err := unix.Read(p.readFD, chunk)
		if n > 0 {
			buf.Write(chunk[:n])
		}
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil, n <= 0:
			return
		}
	}
}

func (p pipe) close() error {
	return errors.Join(unix.Close(p.readFD), p.write.Close())
}

// Result is what a slot reports once its process has been reaped.
type Result struct {
	Unit       *domain.ExecutableUnit
	ExitStatus int
	Stdout     []byte
	Stderr     []byte
}

// Failed reports whether the process exited with a non-zero status.
func (r Result) Failed() bool {
	return r.ExitStatus != 0
}

// ProcessSlot runs one external process at a time and captures its output.
// A slot is reused across units; Execute resets it.
type ProcessSlot struct {
	stdout  pipe
	stderr  pipe
	devnull *os.File

	unit    *domain.ExecutableUnit
	process *os.Process
	outBuf  bytes.Buffer
	errBuf  bytes.Buffer
	status  int
	exited  bool
	fetched bool
}

// NewProcessSlot opens the pipes of a new, free slot.
func NewProcessSlot() (*ProcessSlot, error) {
	stdout, err := openPipe("stdout")
	if err != nil {
		return nil, err
	}
	stderr, err := openPipe("stderr")
	if err != nil {
		_ = stdout.close()
		return nil, err
	}
	devnull, err := os.Open(os.DevNull)
	if err != nil {
		_ = stdout.close()
		_ = stderr.close()
		return nil, zerr.Wrap(err, "failed to open "+os.DevNull)
	}
	return &ProcessSlot{stdout: stdout, stderr: stderr, devnull: devnull, fetched: true}, nil
}

// Free reports whether the slot can take a new unit.
func (s *ProcessSlot) Free() bool {
	return s.fetched
}

// Unit returns the unit currently assigned to the slot.
func (s *ProcessSlot) Unit() *domain.ExecutableUnit {
	return s.unit
}

// Execute resets the slot and spawns the unit's callee with its standard streams on the slot's pipes.
// A callee that cannot be started is reported as an exited process with status 127.
func (s *ProcessSlot) Execute(unit *domain.ExecutableUnit) {
	s.unit = unit
	s.process = nil
	s.outBuf.Reset()
	s.errBuf.Reset()
	s.status = 0
	s.exited = false
	s.fetched = false

	// Leftovers of a previous process that was killed before it was drained.
	var discard bytes.Buffer
	s.stdout.drain(&discard)
	s.stderr.drain(&discard)

	path, err := resolveCallee(unit.Callee, unit.WorkingDir)
	if err == nil {
		argv := append([]string{unit.Callee}, unit.Args...)
		s.process, err = os.StartProcess(path, argv, &os.ProcAttr{
			Dir:   unit.WorkingDir,
			Env:   os.Environ(),
			Files: []*os.File{s.devnull, s.stdout.write, s.stderr.write},
		})
	}
	if err != nil {
		s.exited = true
		s.status = spawnFailureStatus
		s.errBuf.WriteString(err.Error())
		s.errBuf.WriteByte('\n')
	}
}

// Done polls the process without blocking. When it first reports an exit it drains both
// pipes and records the exit status.
func (s *ProcessSlot) Done() bool {
	if s.exited {
		return true
	}
	if s.process == nil {
		return false
	}
	var ws unix.WaitStatus
	pid, err := unix.Wait4(s.process.Pid, &ws, unix.WNOHANG, nil)
	switch {
	case errors.Is(err, unix.EINTR), err == nil && pid == 0:
		s.Drain()
		return false
	case err != nil:
		s.finish(1)
		s.errBuf.WriteString(zerr.Wrap(err, "failed to wait for process").Error())
		s.errBuf.WriteByte('\n')
		return true
	}
	s.finish(exitStatus(ws))
	return true
}

// Wait blocks until the process exits and records its status.
func (s *ProcessSlot) Wait() {
	if s.exited || s.process == nil {
		return
	}
	var ws unix.WaitStatus
	for {
		_, err := unix.Wait4(s.process.Pid, &ws, 0, nil)
		if !errors.Is(err, unix.EINTR) {
			break
		}
	}
	s.finish(exitStatus(ws))
}

// Kill terminates the running process. The slot still has to be reaped.
func (s *ProcessSlot) Kill() {
	if s.exited || s.process == nil {
		return
	}
	_ = s.process.Kill()
}

// Drain moves the output produced so far into the slot's buffers.
// Draining while the process runs keeps it from blocking on a full pipe.
func (s *ProcessSlot) Drain() {
	s.stdout.drain(&s.outBuf)
	s.stderr.drain(&s.errBuf)
}

func (s *ProcessSlot) finish(status int) {
	s.Drain()
	s.status = status
	s.exited = true
	if s.process != nil {
		_ = s.process.Release()
	}
}

// Fetch returns the result of an exited process and frees the slot.
// It returns false if the process has not exited or the result was already fetched.
func (s *ProcessSlot) Fetch() (Result, bool) {
	if !s.exited || s.fetched {
		return Result{}, false
	}
	s.fetched = true
	return Result{
		Unit:       s.unit,
		ExitStatus: s.status,
		Stdout:     bytes.Clone(s.outBuf.Bytes()),
		Stderr:     bytes.Clone(s.errBuf.Bytes()),
	}, true
}

// Close releases the slot's pipes.
func (s *ProcessSlot) Close() error {
	return errors.Join(s.stdout.close(), s.stderr.close(), s.devnull.Close())
}

func exitStatus(ws unix.WaitStatus) int {
	if ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return ws.ExitStatus()
}

// resolveCallee finds the executable the way a shell would, except that relative paths with a
// directory component are taken relative to the unit's working directory.
func resolveCallee(callee, dir string) (string, error) {
	if callee == "" {
		return "", zerr.New("empty command")
	}
	if strings.ContainsRune(callee, filepath.Separator) {
		if !filepath.IsAbs(callee) {
			callee = filepath.Join(dir, callee)
		}
		return callee, nil
	}
	path, err := exec.LookPath(callee)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "command not found"), "command", callee)
	}
	return path, nil
}
