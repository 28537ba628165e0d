package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/linusg/libjs-test262/realm"
)

// Config holds one invocation's inputs. Zero value: AST pipeline, no
// harness files, target read from the process standard input.
type Config struct {
	mode         realm.Mode
	harnessFiles []string
	targetPath   string
	stdin        io.Reader
	strict       bool
}

// Option configures a single Run.
type Option func(*Config)

// WithMode selects the engine's compilation pipeline.
func WithMode(m realm.Mode) Option {
	return func(c *Config) {
		c.mode = m
	}
}

// WithHarnessFiles appends scripts to run, in order, before the target.
func WithHarnessFiles(paths ...string) Option {
	return func(c *Config) {
		c.harnessFiles = append(c.harnessFiles, paths...)
	}
}

// WithTarget sets the target script path. Empty means standard input.
func WithTarget(path string) Option {
	return func(c *Config) {
		c.targetPath = path
	}
}

// WithStdin overrides where a path-less target is read from.
func WithStdin(r io.Reader) Option {
	return func(c *Config) {
		c.stdin = r
	}
}

// WithStrict runs the target as its strict variant: the strict-mode
// directive is prepended to the target source. Harness files are never
// affected.
func WithStrict() Option {
	return func(c *Config) {
		c.strict = true
	}
}

// Run performs one harness invocation: redirect stdout, run the harness
// files then the target, restore stdout, and hand back the combined
// record. A non-nil error means the descriptor redirection itself failed;
// no structured result is possible then and the process should abort.
//
// Every other failure — unreadable files, parse errors, runtime
// exceptions — is classified into the Result instead.
func Run(opts ...Option) (res Result, err error) {
	cfg := Config{stdin: os.Stdin}
	for _, opt := range opts {
		opt(&cfg)
	}

	cpt, err := newCapture()
	if err != nil {
		return res, err
	}
	// Restore must run even if script execution panics; stdout must
	// never be left pointing at the pipe.
	defer func() {
		if out := cpt.restore(); out != "" {
			res.Output = out
		}
	}()

	rlm := realm.New(realm.WithMode(cfg.mode))

	for _, path := range cfg.harnessFiles {
		if terr := runFile(rlm, path); terr != nil {
			res.HarnessError = true
			res.HarnessFile = path
			res.Error = terr
			return res, nil
		}
	}

	res.Error = runTarget(rlm, &cfg)
	return res, nil
}

// runFile reads, parses and runs one script file against rlm. A nil
// return means the file both parsed and ran without a propagated
// exception.
func runFile(rlm *realm.Realm, path string) *TestError {
	src, err := os.ReadFile(path)
	if err != nil {
		return &TestError{Details: fmt.Sprintf("Failed to open '%s': %v", path, err)}
	}
	return runSource(rlm, path, string(src))
}

func runTarget(rlm *realm.Realm, cfg *Config) *TestError {
	name := "<stdin>"
	var src string
	if cfg.targetPath != "" {
		data, err := os.ReadFile(cfg.targetPath)
		if err != nil {
			return &TestError{Details: fmt.Sprintf("Failed to open '%s': %v", cfg.targetPath, err)}
		}
		name = cfg.targetPath
		src = string(data)
	} else {
		data, err := io.ReadAll(cfg.stdin)
		if err != nil {
			return &TestError{Details: fmt.Sprintf("Failed to read stdin: %v", err)}
		}
		src = string(data)
	}
	if cfg.strict {
		src = StrictSource(src)
	}
	return runSource(rlm, name, src)
}

func runSource(rlm *realm.Realm, name, src string) *TestError {
	if _, err := rlm.RunScript(name, src); err != nil {
		return Classify(rlm, err)
	}
	return nil
}
