package contextx

import "errors"

// ErrNoValue возвращается, когда в контексте нет запрошенного значения.
var ErrNoValue = errors.New("no value in context")
