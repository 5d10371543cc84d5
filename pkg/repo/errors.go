package repo

import "errors"

// ErrSubjectNotFound субъект отсутствует в таблице флагов
var ErrSubjectNotFound = errors.New("subject flags not found")
