package logger_test

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/beelder/internal/adapters/logger"
	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/zerr"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(fn func()) (string, error) {
	originalStderr := os.Stderr

	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stderr = w

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	if err := w.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}
	output := <-done
	if err := r.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}
	os.Stderr = originalStderr

	return output, nil
}

func TestLogger_Info(t *testing.T) {
	output, err := captureStderr(func() {
		// Create the logger inside the capture function so it uses the redirected stderr
		lg := logger.New()
		lg.Info("some message")
	})
	if err != nil {
		t.Fatalf("Failed to capture stderr: %v", err)
	}

	if !strings.Contains(output, "some message") {
		t.Errorf("Expected output to contain 'some message', got: %s", output)
	}
	if !strings.Contains(output, "INFO") {
		t.Errorf("Expected output to contain 'INFO', got: %s", output)
	}
}

func TestLogger_Error(t *testing.T) {
	output, err := captureStderr(func() {
		lg := logger.New()
		lg.Error(os.ErrPermission)
	})
	if err != nil {
		t.Fatalf("Failed to capture stderr: %v", err)
	}

	if !strings.Contains(output, "permission denied") {
		t.Errorf("Expected output to contain 'permission denied', got: %s", output)
	}
	if !strings.Contains(output, "ERROR") {
		t.Errorf("Expected output to contain 'ERROR', got: %s", output)
	}
}

func TestLogger_Error_Metadata(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Error(zerr.With(zerr.Wrap(domain.ErrParse, "line 3: compiler redefinition"), "path", "/src/app.bee"))

	assert.Contains(t, buf.String(), "compiler redefinition")
	assert.Contains(t, buf.String(), "path=/src/app.bee")
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Warn("some warning")

	assert.Contains(t, buf.String(), "some warning")
	assert.Contains(t, buf.String(), "WARN")
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	lg.SetLevel(domain.LogLevelDebug)
	lg.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "DEBUG")

	buf.Reset()
	lg.SetLevel(domain.LogLevelError)
	lg.Warn("suppressed")
	assert.Empty(t, buf.String())
}
