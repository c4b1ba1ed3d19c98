package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrInvalidFileName     = errors.New("file name must be <provider>_<YYYYMM>")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrQueryNotSelect      = errors.New("generated query is not a single SELECT statement")
	ErrPriceListNotQueued  = errors.New("price list is not in a parseable state")
)
