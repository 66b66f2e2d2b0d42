// Package vcserr carries the fixed error taxonomy the top-level command
// dispatcher translates into literal user-channel strings and a non-zero
// exit code. Modeled on the teacher's internal/errors package, trading
// its HTTP-status categories for the spec's own Kind taxonomy.
package vcserr

import "errors"

type Kind string

const (
	AlreadyInitialized          Kind = "ALREADY_INITIALIZED"
	NoSuchFile                  Kind = "NO_SUCH_FILE"
	NothingToRemove             Kind = "NOTHING_TO_REMOVE"
	EmptyMessage                Kind = "EMPTY_MESSAGE"
	NoChanges                   Kind = "NO_CHANGES"
	NoSuchCommit                Kind = "NO_SUCH_COMMIT"
	NoSuchFileInCommit          Kind = "NO_SUCH_FILE_IN_COMMIT"
	NoSuchBranch                Kind = "NO_SUCH_BRANCH"
	BranchExists                Kind = "BRANCH_EXISTS"
	CannotRemoveCurrent         Kind = "CANNOT_REMOVE_CURRENT"
	CheckoutCurrent             Kind = "CHECKOUT_CURRENT"
	UntrackedWouldBeOverwritten Kind = "UNTRACKED_WOULD_BE_OVERWRITTEN"
	UncommittedChanges          Kind = "UNCOMMITTED_CHANGES"
	SelfMerge                   Kind = "SELF_MERGE"
	NoRemote                    Kind = "NO_REMOTE"
	NoRemoteBranch              Kind = "NO_REMOTE_BRANCH"
	PushWouldRewrite            Kind = "PUSH_WOULD_REWRITE"
)

// Error is a tagged failure carrying the exact message §7 fixes for its
// Kind. The dispatcher never reconstructs the string itself.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Is reports whether err is a *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func ErrAlreadyInitialized() *Error {
	return New(AlreadyInitialized, "A Gitlite version-control system already exists in the current directory.")
}

func ErrNoSuchFile() *Error {
	return New(NoSuchFile, "File does not exist.")
}

func ErrNothingToRemove() *Error {
	return New(NothingToRemove, "No reason to remove the file.")
}

func ErrEmptyMessage() *Error {
	return New(EmptyMessage, "Please enter a commit message.")
}

func ErrNoChanges() *Error {
	return New(NoChanges, "No changes added to the commit.")
}

func ErrNoSuchCommit() *Error {
	return New(NoSuchCommit, "No commit with that id exists.")
}

func ErrNoSuchFileInCommit() *Error {
	return New(NoSuchFileInCommit, "File does not exist in that commit.")
}

// ErrNoSuchBranchExists is used where the spec's exemplar is
// "No such branch exists." (merge's given-branch check).
func ErrNoSuchBranchExists() *Error {
	return New(NoSuchBranch, "No such branch exists.")
}

// ErrNoBranchNamed is used where the spec's exemplar is
// "A branch with that name does not exist." (rm-branch / checkout of a
// named branch).
func ErrNoBranchNamed() *Error {
	return New(NoSuchBranch, "A branch with that name does not exist.")
}

func ErrBranchExists() *Error {
	return New(BranchExists, "A branch with that name already exists.")
}

func ErrCannotRemoveCurrent() *Error {
	return New(CannotRemoveCurrent, "Cannot remove the current branch.")
}

func ErrCheckoutCurrent() *Error {
	return New(CheckoutCurrent, "No need to checkout the current branch.")
}

func ErrUntrackedWouldBeOverwritten() *Error {
	return New(UntrackedWouldBeOverwritten, "There is an untracked file in the way; delete it, or add and commit it first.")
}

func ErrUncommittedChanges() *Error {
	return New(UncommittedChanges, "You have uncommitted changes.")
}

func ErrSelfMerge() *Error {
	return New(SelfMerge, "Cannot merge a branch with itself.")
}

func ErrNoRemote() *Error {
	return New(NoRemote, "Remote directory not found.")
}

func ErrNoRemoteBranch() *Error {
	return New(NoRemoteBranch, "That remote does not have that branch.")
}

func ErrPushWouldRewrite() *Error {
	return New(PushWouldRewrite, "Please pull down remote changes before pushing.")
}
