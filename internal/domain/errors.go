package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every rejected operation wraps exactly one of these.
var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrValidationFailed = errors.New("validation failed")
)

// Domain errors.
var (
	ErrTaskNotFound       = fmt.Errorf("task %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrNotLoggedIn        = fmt.Errorf("not logged in (run 'bugtrack login' first): %w", ErrUnauthorized)
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	ErrManagerOnly        = fmt.Errorf("only managers can do this: %w", ErrUnauthorized)
	ErrEmptyTitle         = fmt.Errorf("title cannot be empty: %w", ErrValidationFailed)
	ErrEmptyDescription   = fmt.Errorf("description cannot be empty: %w", ErrValidationFailed)
	ErrUnknownAssignee    = fmt.Errorf("assignee does not match any user: %w", ErrValidationFailed)
	ErrUnknownReporter    = fmt.Errorf("reporter does not match any user: %w", ErrValidationFailed)
	ErrInvalidStatus      = fmt.Errorf("invalid status: %w", ErrValidationFailed)
	ErrInvalidPriority    = fmt.Errorf("invalid priority: %w", ErrValidationFailed)
	ErrInvalidHours       = fmt.Errorf("hours must be positive: %w", ErrValidationFailed)
	ErrInvalidDate        = fmt.Errorf("date must be yyyy-mm-dd: %w", ErrValidationFailed)
	ErrInvalidEstimate    = fmt.Errorf("estimated hours cannot be negative: %w", ErrValidationFailed)
	ErrNoFieldsToUpdate   = fmt.Errorf("no fields to update: %w", ErrValidationFailed)
	ErrInvalidSortKey     = fmt.Errorf("invalid sort key: %w", ErrValidationFailed)
	ErrInvalidAction      = fmt.Errorf("invalid action: %w", ErrValidationFailed)
	ErrUnknownSetting     = fmt.Errorf("unknown setting: %w", ErrValidationFailed)
	ErrInvalidExport      = fmt.Errorf("export format must be csv or json: %w", ErrValidationFailed)
	ErrEmptyImport        = fmt.Errorf("import file contains no tasks: %w", ErrValidationFailed)
	ErrEmptyPassword      = fmt.Errorf("password cannot be empty: %w", ErrValidationFailed)
)

// Infrastructure errors.
var (
	ErrConfigExists   = errors.New("config file already exists")
	ErrUnknownBackend = errors.New("unknown store backend")
	ErrNoLogFile      = errors.New("no log file found")

	ErrMigrationConflict = errors.New("destination store already holds different data")
	ErrSameStore         = errors.New("destination is the current store")
	ErrInvalidHash       = errors.New("invalid password hash")
)
