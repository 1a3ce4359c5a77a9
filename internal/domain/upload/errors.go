package upload

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	ErrFileTooLarge  = errors.New("file exceeds the maximum upload size")
	ErrInvalidImage  = errors.New("payload is not a decodable image")
	ErrRateLimited   = errors.New("too many uploads, slow down")
)
