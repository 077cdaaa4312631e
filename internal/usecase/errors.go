package usecase

import (
	"errors"
	"fmt"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// エラーメッセージはAPI越しにクライアントが分岐に使うので固定文字列。
const (
	MsgUnauthorized        = "unauthorized"
	MsgCartEmpty           = "cart empty"
	MsgMissingPaymentProof = "missing payment proof"
	MsgIllegalTransition   = "illegal transition"
	MsgShopClosed          = "shop closed"
	MsgRemoteUnavailable   = "remote unavailable"
)
