package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Run builds and executes one pass for the job, blocking until the encoder
// exits. When verbose is enabled, stderr is tee'd to os.Stderr in real time;
// otherwise it is captured silently so the tail can be logged on failure.
// Failures are reported, never retried.
func Run(ctx context.Context, job *Job, pass Pass) ExecResult {
	args := Build(job, pass)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if job.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
