package util

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")

	ErrPermissionDenied = errors.New("permission denied")
	ErrNotOwner         = errors.New("attempt does not belong to the caller")
	ErrNotEnrolled      = errors.New("student is not enrolled in the course")

	ErrCourseNotFound   = errors.New("course not found")
	ErrTestNotFound     = errors.New("test not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrQuestionNotFound = errors.New("question not found in test")

	ErrTestNotAvailable      = errors.New("test not published or not accessible")
	ErrAttemptLimitExceeded  = errors.New("maximum number of attempts reached")
	ErrAttemptInProgress     = errors.New("an attempt is already in progress")
	ErrAttemptNotInProgress  = errors.New("attempt is not in progress")
	ErrInvalidState          = errors.New("attempt does not accept answers")
	ErrAttemptExpired        = fmt.Errorf("%w: time limit exceeded", ErrInvalidState)
	ErrConcurrentAttempt     = errors.New("concurrent attempt modification, please retry")
	ErrStaleAttempt          = errors.New("attempt version changed")
	ErrTestLocked            = errors.New("test already has attempts and can no longer be modified")
	ErrAlreadyEnrolled       = errors.New("student already enrolled")
	ErrQuestionIDTaken       = errors.New("question id already belongs to another test")
	ErrStorage               = errors.New("storage unavailable")
	ErrExportStorageDisabled = errors.New("export storage not configured")
)

// Kind 错误分类，决定调用方是否可以重试以及 HTTP 状态码
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthorization
	KindNotFound
	KindConflict
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTransient:
		return "transient"
	}
	return "unknown"
}

var kindTable = []struct {
	err  error
	kind Kind
}{
	{ErrInvalidCredentials, KindAuthorization},
	{ErrUserDisabled, KindAuthorization},
	{ErrPermissionDenied, KindAuthorization},
	{ErrNotOwner, KindAuthorization},
	{ErrNotEnrolled, KindAuthorization},
	{ErrUserNotFound, KindNotFound},
	{ErrCourseNotFound, KindNotFound},
	{ErrTestNotFound, KindNotFound},
	{ErrAttemptNotFound, KindNotFound},
	{ErrQuestionNotFound, KindNotFound},
	{ErrEmailRegistered, KindConflict},
	{ErrTestNotAvailable, KindConflict},
	{ErrAttemptLimitExceeded, KindConflict},
	{ErrAttemptInProgress, KindConflict},
	{ErrAttemptNotInProgress, KindConflict},
	{ErrInvalidState, KindConflict},
	{ErrConcurrentAttempt, KindConflict},
	{ErrStaleAttempt, KindConflict},
	{ErrTestLocked, KindConflict},
	{ErrAlreadyEnrolled, KindConflict},
	{ErrQuestionIDTaken, KindConflict},
	{ErrStorage, KindTransient},
	{ErrExportStorageDisabled, KindTransient},
}

func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}
	for _, entry := range kindTable {
		if errors.Is(err, entry.err) {
			return entry.kind
		}
	}
	return KindUnknown
}

// FieldViolation 单个字段的校验失败原因
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError 收集全部校验失败项，而不是遇到第一个就返回
type ValidationError struct {
	Violations []FieldViolation `json:"violations"`
}

func (e *ValidationError) Add(field, reason string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Reason: reason})
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// OrNil 没有任何校验失败时返回 nil
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Violations) == 0 {
		return nil
	}
	return e
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Reason: reason}}}
}
