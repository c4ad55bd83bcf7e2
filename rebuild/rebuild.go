// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rebuild

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// State of the orchestrator. Exactly one rebuild can be past Idle at
// any time.
type State int

const (
	StateIdle State = iota
	StateBuilding
	StateSwapping
	StateRollingBack
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StateSwapping:
		return "swapping"
	case StateRollingBack:
		return "rolling_back"
	}
	return "unknown"
}

const (
	// DefaultCooldown is the minimum interval between rebuild
	// attempts, successful or not.
	DefaultCooldown = 10 * time.Second

	// DefaultGraceDelay is how long the backup of the previous live
	// tree is kept around after a successful swap, so in-flight
	// requests reading old files are not pulled out from under.
	DefaultGraceDelay = 5 * time.Second
)

// ErrInProgress rejects a trigger while a rebuild is running.
var ErrInProgress = errors.New("rebuild already in progress")

// CooldownError rejects a trigger inside the cooldown window.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	secs := int(e.Remaining.Seconds())
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("cooldown remaining %ds", secs)
}

// BuildError marks a failed build step. The live directory is
// untouched when this is reported.
type BuildError struct {
	Err error
}

func (e *BuildError) Error() string { return "build failed: " + e.Err.Error() }
func (e *BuildError) Unwrap() error { return e.Err }

// SwapError marks a failed directory swap. When RollbackErr is also
// set the rollback failed too and the live path may be unserved; that
// case requires operator intervention.
type SwapError struct {
	Err         error
	RollbackErr error
}

func (e *SwapError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("swap failed and rollback failed (MANUAL INTERVENTION REQUIRED): %v; rollback: %v", e.Err, e.RollbackErr)
	}
	return "swap failed, previous site restored: " + e.Err.Error()
}
func (e *SwapError) Unwrap() error { return e.Err }

// Fatal reports whether the live path was left unserved.
func (e *SwapError) Fatal() bool { return e.RollbackErr != nil }

// Config locates the build toolchain and output tree.
type Config struct {
	// BuildCommand is the argv of the static-site build. It must write
	// the site into the directory named by the BUILD_OUTPUT_DIR
	// environment variable.
	BuildCommand []string

	// WorkDir is the working directory for the build command.
	WorkDir string

	// OutputRoot holds the live/, backup/, and staging/ trees.
	OutputRoot string

	Cooldown   time.Duration
	GraceDelay time.Duration
}

// Orchestrator serializes rebuilds of the prerendered site and swaps
// the result into the live path atomically. There is exactly one per
// process, constructed at startup and shared by reference; the
// in-process guard is sufficient only because the service is
// single-process.
type Orchestrator struct {
	cfg Config

	mu          sync.Mutex
	state       State
	lastAttempt time.Time
	lastRebuild time.Time
	lastErr     error
	done        chan struct{}
	backupTimer *time.Timer

	// Injectable for failure-injection tests.
	runBuild  func(ctx context.Context, stagingDir string) error
	rename    func(oldpath, newpath string) error
	removeAll func(path string) error
	now       func() time.Time
}

func New(cfg Config) *Orchestrator {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	if cfg.GraceDelay <= 0 {
		cfg.GraceDelay = DefaultGraceDelay
	}
	o := &Orchestrator{
		cfg:       cfg,
		rename:    os.Rename,
		removeAll: func(path string) error { return os.RemoveAll(path) },
		now:       time.Now,
	}
	o.runBuild = o.execBuild
	return o
}

// LivePath is the directory the static-file server reads from.
func (o *Orchestrator) LivePath() string { return filepath.Join(o.cfg.OutputRoot, "live") }

func (o *Orchestrator) backupPath() string  { return filepath.Join(o.cfg.OutputRoot, "backup") }
func (o *Orchestrator) stagingPath() string { return filepath.Join(o.cfg.OutputRoot, "staging") }

// Status is the poll answer for admin clients.
type Status struct {
	IsRebuilding    bool      `json:"is_rebuilding"`
	State           string    `json:"state"`
	LastRebuildTime time.Time `json:"last_rebuild_time"`
	CanRebuild      bool      `json:"can_rebuild"`
	LastError       string    `json:"last_error,omitempty"`
}

func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	st := Status{
		IsRebuilding:    o.state != StateIdle,
		State:           o.state.String(),
		LastRebuildTime: o.lastRebuild,
	}
	st.CanRebuild = o.state == StateIdle &&
		(o.lastAttempt.IsZero() || o.now().Sub(o.lastAttempt) >= o.cfg.Cooldown)
	if o.lastErr != nil {
		st.LastError = o.lastErr.Error()
	}
	return st
}

// Trigger starts a rebuild. It rejects synchronously with
// ErrInProgress or a CooldownError; acceptance means the build runs in
// the background to completion (no cancellation), with the outcome
// visible through Status.
func (o *Orchestrator) Trigger(ctx context.Context) error {
	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return ErrInProgress
	}
	if !o.lastAttempt.IsZero() {
		if since := o.now().Sub(o.lastAttempt); since < o.cfg.Cooldown {
			remaining := o.cfg.Cooldown - since
			o.mu.Unlock()
			return &CooldownError{Remaining: remaining}
		}
	}
	o.state = StateBuilding
	o.lastAttempt = o.now()
	done := make(chan struct{})
	o.done = done
	o.mu.Unlock()

	go o.run(context.WithoutCancel(ctx), done)
	return nil
}

func (o *Orchestrator) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	start := o.now()

	staging := o.stagingPath()
	if err := o.removeAll(staging); err != nil {
		o.finish(&BuildError{Err: fmt.Errorf("clear staging: %w", err)})
		return
	}
	if err := os.MkdirAll(o.cfg.OutputRoot, 0o755); err != nil {
		o.finish(&BuildError{Err: err})
		return
	}

	// Build into the side-by-side staging tree. Any failure here
	// leaves the live directory untouched.
	if err := o.runBuild(ctx, staging); err != nil {
		o.finish(&BuildError{Err: err})
		return
	}
	if _, err := os.Stat(filepath.Join(staging, "index.html")); err != nil {
		o.finish(&BuildError{Err: fmt.Errorf("staging has no index.html: %w", err)})
		return
	}

	slog.Info("build completed",
		"output_size", humanize.Bytes(uint64(dirSize(staging))),
		"duration", humanize.RelTime(start, o.now(), "", ""),
	)

	o.setState(StateSwapping)
	if err := o.swap(staging); err != nil {
		o.finish(err)
		return
	}

	o.mu.Lock()
	o.lastRebuild = o.now()
	o.mu.Unlock()
	o.finish(nil)
}

// swap replaces the live tree with the staging tree using only
// renames, so concurrent readers of the live path always see either
// the old complete tree or the new complete tree.
func (o *Orchestrator) swap(staging string) error {
	live := o.LivePath()
	backup := o.backupPath()

	// A removal still pending from the previous swap must not fire
	// while this one is moving trees around; it would delete the
	// fresh backup between the renames.
	o.mu.Lock()
	if o.backupTimer != nil {
		o.backupTimer.Stop()
		o.backupTimer = nil
	}
	o.mu.Unlock()

	// A leftover backup from a crashed earlier swap would make the
	// first rename fail; it is private to the orchestrator and safe
	// to remove.
	if err := o.removeAll(backup); err != nil {
		return &SwapError{Err: fmt.Errorf("clear backup: %w", err)}
	}

	hadLive := false
	if _, err := os.Stat(live); err == nil {
		hadLive = true
		if err := o.rename(live, backup); err != nil {
			// Live is still in place; nothing was lost.
			return &SwapError{Err: fmt.Errorf("move live to backup: %w", err)}
		}
	}

	if err := o.rename(staging, live); err != nil {
		if !hadLive {
			return &SwapError{Err: fmt.Errorf("move staging to live: %w", err)}
		}
		o.setState(StateRollingBack)
		if rbErr := o.rename(backup, live); rbErr != nil {
			swapErr := &SwapError{Err: err, RollbackErr: rbErr}
			slog.Error("rollback failed, live site may be unserved; manual intervention required",
				"error", err, "rollback_error", rbErr, "backup", backup)
			return swapErr
		}
		slog.Warn("swap failed, previous site restored", "error", err)
		return &SwapError{Err: err}
	}

	if hadLive {
		// The old tree may still be serving in-flight requests;
		// delete it after a grace delay. The callback checks it is
		// still the current timer, so a swap that already superseded
		// it never loses its backup.
		remove := o.removeAll
		o.mu.Lock()
		var tm *time.Timer
		tm = time.AfterFunc(o.cfg.GraceDelay, func() {
			o.mu.Lock()
			current := o.backupTimer == tm
			if current {
				o.backupTimer = nil
			}
			o.mu.Unlock()
			if !current {
				return
			}
			if err := remove(backup); err != nil {
				slog.Warn("failed to remove backup tree", "path", backup, "error", err)
			}
		})
		o.backupTimer = tm
		o.mu.Unlock()
	}
	return nil
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) finish(err error) {
	o.mu.Lock()
	o.state = StateIdle
	o.lastErr = err
	o.mu.Unlock()
	if err != nil {
		slog.Error("rebuild failed", "error", err)
	} else {
		slog.Info("rebuild completed, new site live")
	}
}

func (o *Orchestrator) execBuild(ctx context.Context, staging string) error {
	if len(o.cfg.BuildCommand) == 0 {
		return errors.New("no build command configured")
	}
	cmd := exec.CommandContext(ctx, o.cfg.BuildCommand[0], o.cfg.BuildCommand[1:]...)
	cmd.Dir = o.cfg.WorkDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), "BUILD_OUTPUT_DIR="+staging)
	slog.Info("running build", "command", strings.Join(o.cfg.BuildCommand, " "))
	return cmd.Run()
}

func dirSize(root string) int64 {
	var total int64
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}
