package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/nutrigood/nutrigood-backend/internal/user"
)

// outputMarker prefixes the stdout line carrying the JSON result. The script
// may print diagnostics on earlier lines; the last marker line wins.
const outputMarker = "Output:"

// ScriptRunner invokes the OCR/ML script as a child process:
//
//	<command> <script> <imagePath> <age> <weight> <diabetes>
//
// Stdout is captured in full for the result; stderr is captured for
// server-side diagnostics only.
type ScriptRunner struct {
	command string
	script  string
	timeout time.Duration
}

// NewScriptRunner creates a ScriptRunner. The timeout bounds each run on top
// of whatever deadline the request context already carries.
func NewScriptRunner(command, script string, timeout time.Duration) *ScriptRunner {
	return &ScriptRunner{command: command, script: script, timeout: timeout}
}

// Run executes the script and parses its output. The child process is bound
// to ctx, so a client disconnect terminates it rather than leaking it.
func (r *ScriptRunner) Run(ctx context.Context, imagePath string, attrs user.Attributes) (*Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.command, r.script,
		imagePath,
		strconv.Itoa(attrs.Age),
		strconv.Itoa(attrs.Weight),
		attrs.Diabetes,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if runCtx.Err() != nil {
			slog.Error("inference process timed out", "script", r.script, "timeout", r.timeout)
			return nil, ErrTimeout
		}
		slog.Error("inference process failed",
			"script", r.script,
			"error", err,
			"stderr", stderr.String(),
		)
		return nil, fmt.Errorf("%w: %v", ErrProcessFailed, err)
	}

	result, err := parseOutput(stdout.Bytes())
	if err != nil {
		slog.Error("unparsable inference output", "script", r.script, "error", err)
		return nil, err
	}

	return result, nil
}

// parseOutput extracts the result from the captured stdout. The contract is
// a single convention: the last line beginning with "Output:" carries the
// JSON object. Anything else on stdout is diagnostic noise.
func parseOutput(stdout []byte) (*Result, error) {
	var payload string
	for _, line := range strings.Split(string(stdout), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, outputMarker) {
			payload = strings.TrimSpace(strings.TrimPrefix(line, outputMarker))
		}
	}

	if payload == "" {
		return nil, fmt.Errorf("%w: no %q line in stdout", ErrBadOutput, outputMarker)
	}

	var result Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadOutput, err)
	}

	return &result, nil
}
