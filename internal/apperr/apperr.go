// Package apperr はアプリケーション全体で使用するエラー種別を定義します。
// 種別は閉じた集合で、HTTPステータスコードと利用者向けメッセージを持ちます。
package apperr

import (
	"errors"
	"net/http"
)

// Kind はエラーの分類です。
type Kind int

const (
	// KindInternal は分類されない内部エラーです（デフォルト）。
	KindInternal Kind = iota
	// KindValidation は入力の欠落・不正です。
	KindValidation
	// KindConflict は一意性制約の衝突です。
	KindConflict
	// KindNotFound はルートまたはリソースの不在です。
	KindNotFound
	// KindRateLimited はレート制限超過です。
	KindRateLimited
)

// Status は種別に対応するHTTPステータスコードを返します。
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error は種別と利用者向けメッセージを持つアプリケーションエラーです。
type Error struct {
	Kind    Kind
	Message string
	Err     error // 原因となった下位エラー（任意）
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation は入力エラーを作成します。
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict は衝突エラーを作成します。
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NotFound は不在エラーを作成します。
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// RateLimited はレート制限エラーを作成します。
func RateLimited(message string) *Error {
	return &Error{Kind: KindRateLimited, Message: message}
}

// Internal は下位エラーを包んだ内部エラーを作成します。
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// From は任意のエラーを *Error に解決します。
// 型付けされていないエラー（ライブラリ・DB由来）は内部エラーとして扱います。
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
