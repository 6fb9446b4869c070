package errors

// Convenience functions for common error patterns

// Document errors

func IOFailure(operation, path string, cause error) *BlogError {
	return Wrap(cause, CategoryIO, SeverityFatal, operation+" failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

func ParseFailure(path string, cause error) *BlogError {
	return Wrap(cause, CategoryParse, SeverityFatal, "malformed metadata block").
		WithContext("path", path)
}

func DataInvalid(path, field, reason string) *BlogError {
	return New(CategoryData, SeverityFatal, "invalid metadata field "+field+": "+reason).
		WithContext("path", path).
		WithContext("field", field)
}

// Config errors

func ConfigNotFound(path string) *BlogError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(field, reason string) *BlogError {
	return New(CategoryValidation, SeverityFatal, "invalid configuration: "+field+" "+reason).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Internal errors

func InternalError(message string, cause error) *BlogError {
	if cause == nil {
		return New(CategoryInternal, SeverityFatal, message)
	}
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
