package services

// Error taxonomy shared by all services. Handlers map these onto HTTP
// statuses; anything else is treated as a server fault.

type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

type NotFoundError struct{ Entity string }

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func notFound(entity string) error { return &NotFoundError{Entity: entity} }

type DuplicateError struct{ Entity string }

func (e *DuplicateError) Error() string { return e.Entity + " already exists" }

func duplicate(entity string) error { return &DuplicateError{Entity: entity} }
