package sched

import "errors"

var (
	ErrUnknownTaskBody   = errors.New("no such task name to create")
	ErrNoSuchTask        = errors.New("no such pid in the queue")
	ErrPlaceholderExists = errors.New("placeholder task already exists")
	ErrAlreadyRunning    = errors.New("scheduler is already running")
	ErrTaskRunning       = errors.New("task is running")
)
