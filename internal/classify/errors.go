package classify

import "errors"

var errParseFailed = errors.New("classify: grammar produced no tree")
