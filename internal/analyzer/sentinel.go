package analyzer

import (
	"errors"
	"fmt"
)

var (
	errNotUTF8 = errors.New("file is not valid UTF-8")
	errDegraded = errors.New("grammar parse failed, used regex fallback classifier")
)

func errTooLarge(size int, limit int64) error {
	return fmt.Errorf("file size %d bytes exceeds limit %d bytes", size, limit)
}
