package services

import "fmt"

// Service errors
var (
	ErrNoTablesSpecified = &ServiceError{Message: "no tables specified"}
	ErrUnknownDimension  = &ServiceError{Message: "unknown ranking dimension"}
	ErrUnknownScope      = &ServiceError{Message: "unknown standings scope"}
	ErrUnknownSection    = &ServiceError{Message: "unknown section"}
	ErrNoWinners         = &ServiceError{Message: "a result needs at least one winner before it can be published"}
	ErrNoPublicURL       = &ServiceError{Message: "public url is not configured"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// InvalidTableError represents an invalid table name error
type InvalidTableError struct {
	Table string
}

func (e *InvalidTableError) Error() string {
	return fmt.Sprintf("invalid table name: %s", e.Table)
}
