// Package engine composes parsing, validation and materialization into a
// single synchronous request pipeline.
package engine

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/sirupsen/logrus"

	"github.com/autostruct/autostruct/internal/materialize"
	"github.com/autostruct/autostruct/internal/parser"
	"github.com/autostruct/autostruct/internal/structure"
	"github.com/autostruct/autostruct/internal/validate"
)

// Request carries everything one run needs. Callers build it once and
// pass it in; there is no ambient session state.
type Request struct {
	Format   parser.Format
	Input    string
	BasePath string
	DryRun   bool
}

// Result reports one run. A non-empty Violations means materialization
// was skipped entirely; the caller decides how to present each part.
type Result struct {
	Tree       *structure.Node
	Violations []validate.Violation
	Actions    []materialize.Action
}

// PreconditionError reports a base path that is missing or not a
// directory. Materialization never starts when it is returned.
type PreconditionError struct {
	Path   string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("base path %s: %s", e.Path, e.Reason)
}

// Engine runs requests against a filesystem. Construct with New; requests
// are independent and nothing is shared between them but the filesystem
// itself, so concurrent runs into overlapping base paths are the caller's
// problem to serialize.
type Engine struct {
	fs  billy.Filesystem
	log *logrus.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFilesystem substitutes the filesystem requests are applied to.
// Base paths are interpreted relative to its root.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithLogger substitutes the engine's logger.
func WithLogger(log *logrus.Logger) Option {
	return func(e *Engine) { e.log = log }
}

func New(opts ...Option) *Engine {
	e := &Engine{fs: osfs.New("/"), log: quietLogger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return log
}

// Run executes one request: parse, validate, check the base path, then
// materialize. Format errors abort before a tree exists. Validation
// issues stop the run before any write and are returned in full for the
// caller to present.
func (e *Engine) Run(req Request) (Result, error) {
	tree, err := parser.Parse(req.Format, req.Input)
	if err != nil {
		return Result{}, err
	}
	res := Result{Tree: tree}

	res.Violations = validate.Check(tree)
	if len(res.Violations) > 0 {
		e.log.Debugf("validation found %d issue(s), skipping materialization", len(res.Violations))
		return res, nil
	}

	if err := e.checkBase(req.BasePath); err != nil {
		return res, err
	}

	e.log.WithFields(logrus.Fields{
		"format":  req.Format.String(),
		"base":    req.BasePath,
		"dry_run": req.DryRun,
	}).Debug("materializing structure")

	res.Actions = materialize.New(e.fs, req.DryRun).Run(tree, req.BasePath)
	return res, nil
}

// checkBase enforces the materializer's precondition: the base directory
// must already exist.
func (e *Engine) checkBase(base string) error {
	fi, err := e.fs.Stat(base)
	if err != nil {
		return &PreconditionError{Path: base, Reason: "does not exist"}
	}
	if !fi.IsDir() {
		return &PreconditionError{Path: base, Reason: "not a directory"}
	}
	return nil
}
