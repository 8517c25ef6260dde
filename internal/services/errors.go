package services

// NotFoundError: a referenced task, session, or log id does not exist (404).
type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError: a malformed or inconsistent argument (400).
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// ConflictError: a state-machine precondition was violated (409).
type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }
