package repository

import (
	stderrors "errors"

	"github.com/CoreyPickett/UONMarketplace-sub000/pkg/errors"
)

// asAppError unwraps a transaction error back to the AppError raised inside
// it, so CONFLICT and NOT_FOUND survive RunTransaction.
func asAppError(err error) (*errors.AppError, bool) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
