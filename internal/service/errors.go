package service

import "fmt"

var (
	ErrCannotCreateLog = fmt.Errorf("cannot create log")
	ErrCannotQueryLogs = fmt.Errorf("cannot query logs")
	ErrInvalidWindow   = fmt.Errorf("minutes must be a positive integer")
)
