// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package wcerr defines the typed error kinds surfaced by the conflict and
// mergeinfo engine (see spec §7). Each kind is either a sentinel value or a
// small struct with an Is* predicate, following the convention used
// throughout the rest of this module's error packages.
package wcerr

import "fmt"

var (
	// ErrCancelled is returned when a caller-supplied cancel predicate
	// reports true. The deleted-rev scanner does not use it: its early
	// exit from a log walk is ErrStopLog.
	ErrCancelled = fmt.Errorf("cancelled")

	// ErrExternalProgram is returned when the external three-way text
	// merge helper fails.
	ErrExternalProgram = fmt.Errorf("external program failed")
)

// ErrPathNotVersioned indicates the workspace has no record of a path.
type ErrPathNotVersioned struct {
	Path string
}

func (e *ErrPathNotVersioned) Error() string {
	return fmt.Sprintf("'%s' is not under version control", e.Path)
}

func NewErrPathNotVersioned(path string) error { return &ErrPathNotVersioned{Path: path} }

func IsErrPathNotVersioned(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrPathNotVersioned)
	return ok
}

// ErrPathNotFound indicates a path does not exist where expected, either in
// the workspace or at a given peg revision on the remote session.
type ErrPathNotFound struct {
	Path string
	Rev  int64
}

func (e *ErrPathNotFound) Error() string {
	if e.Rev >= 0 {
		return fmt.Sprintf("'%s' not found in revision %d", e.Path, e.Rev)
	}
	return fmt.Sprintf("'%s' not found", e.Path)
}

func NewErrPathNotFound(path string, rev int64) error {
	return &ErrPathNotFound{Path: path, Rev: rev}
}

func IsErrPathNotFound(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrPathNotFound)
	return ok
}

// ErrPathNotAuthorised is returned by the remote session when the caller
// lacks read access to a path. During detail population this is swallowed
// and the detail is left unknown; elsewhere it propagates.
type ErrPathNotAuthorised struct {
	Path string
}

func (e *ErrPathNotAuthorised) Error() string {
	return fmt.Sprintf("access to '%s' is not authorised", e.Path)
}

func NewErrPathNotAuthorised(path string) error { return &ErrPathNotAuthorised{Path: path} }

func IsErrPathNotAuthorised(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrPathNotAuthorised)
	return ok
}

// ErrWorkspaceLocked indicates another write lock is already held.
type ErrWorkspaceLocked struct {
	Path string
}

func (e *ErrWorkspaceLocked) Error() string {
	return fmt.Sprintf("working copy '%s' locked", e.Path)
}

func NewErrWorkspaceLocked(path string) error { return &ErrWorkspaceLocked{Path: path} }

func IsErrWorkspaceLocked(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrWorkspaceLocked)
	return ok
}

// ErrWorkspaceCorrupt indicates the on-disk working-copy metadata is
// inconsistent in a way the engine cannot recover from.
type ErrWorkspaceCorrupt struct {
	Reason string
}

func (e *ErrWorkspaceCorrupt) Error() string {
	return fmt.Sprintf("working copy corrupt: %s", e.Reason)
}

func NewErrWorkspaceCorrupt(format string, a ...any) error {
	return &ErrWorkspaceCorrupt{Reason: fmt.Sprintf(format, a...)}
}

func IsErrWorkspaceCorrupt(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrWorkspaceCorrupt)
	return ok
}

// ErrMergeinfoParse is always the topmost error on any mergeinfo parse
// failure; it carries the offending input for diagnostics.
type ErrMergeinfoParse struct {
	Input  string
	Reason string
}

func (e *ErrMergeinfoParse) Error() string {
	return fmt.Sprintf("mergeinfo parse error: %s (in %q)", e.Reason, e.Input)
}

func NewErrMergeinfoParse(input, format string, a ...any) error {
	return &ErrMergeinfoParse{Input: input, Reason: fmt.Sprintf(format, a...)}
}

func IsErrMergeinfoParse(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrMergeinfoParse)
	return ok
}

// ErrNoProvider indicates no authentication provider is registered for a
// required credential kind. It is propagated unchanged from the external
// auth layer; the engine never constructs one itself, only recognises it.
type ErrNoProvider struct {
	CredentialKind string
}

func (e *ErrNoProvider) Error() string {
	return fmt.Sprintf("no provider registered for credential kind '%s'", e.CredentialKind)
}

func NewErrNoProvider(kind string) error { return &ErrNoProvider{CredentialKind: kind} }

func IsErrNoProvider(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrNoProvider)
	return ok
}

// ErrOptionNotApplicable is returned when a caller requests an option id
// that the option engine did not include for the given conflict.
type ErrOptionNotApplicable struct {
	OptionID string
}

func (e *ErrOptionNotApplicable) Error() string {
	return fmt.Sprintf("resolution option '%s' is not applicable to this conflict", e.OptionID)
}

func NewErrOptionNotApplicable(optionID string) error {
	return &ErrOptionNotApplicable{OptionID: optionID}
}

func IsErrOptionNotApplicable(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrOptionNotApplicable)
	return ok
}

// errStopLog is the sentinel a LogHandler returns to stop a log walk early.
// It is not a failure: the deleted-rev scanner uses it once it has found the
// revision it was looking for, per the "stop iteration" contract documented
// on remote.LogHandler.
type errStopLog struct{}

func (errStopLog) Error() string { return "stop log walk" }

// ErrStopLog is returned by a remote.LogHandler to end a log walk without
// reporting a failure. GetLog implementations must recognise it with
// IsStopLog and return nil, not propagate it as a real error.
var ErrStopLog error = errStopLog{}

func IsStopLog(err error) bool {
	_, ok := err.(errStopLog)
	return ok
}

// ErrExitCode carries a specific process exit code for the CLI layer,
// mirroring the teacher's zeta.ErrExitCode (pkg/zeta/misc.go).
type ErrExitCode struct {
	ExitCode int
	Message  string
}

func (e *ErrExitCode) Error() string { return e.Message }

// IsExitCode reports whether err is an *ErrExitCode carrying code.
func IsExitCode(err error, code int) bool {
	if err == nil {
		return false
	}
	e, ok := err.(*ErrExitCode)
	return ok && e.ExitCode == code
}
