package receiptocr

import "errors"

// ErrRemoteDisabled is attached as a fallback error when the remote path was
// wanted but no remote recognizer is configured (or the input is plain text).
var ErrRemoteDisabled = errors.New("remote recognizer not configured")
