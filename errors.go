package main

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced by the pipeline. Every one of them is fatal to the
// current invocation.
var (
	ErrMissingAPIKey   = errors.New("missing API key in environment")
	ErrInvalidResponse = errors.New("invalid response format")
	// ErrMalformedPayload marks a well-formed envelope whose inner JSON text
	// could not be decoded. It still matches ErrInvalidResponse.
	ErrMalformedPayload = fmt.Errorf("%w: malformed payload", ErrInvalidResponse)
	ErrFileNotFound     = errors.New("path does not exist")
	ErrFileRead         = errors.New("file processing error")
	ErrFileWrite        = errors.New("file write error")
	ErrPathTraversal    = errors.New("directory traversal detected")
	ErrRequest          = errors.New("request error")
)

// MissingSectionsError is returned when a generated plan lacks one or more
// of the required markdown headers.
type MissingSectionsError struct {
	Missing []string
}

func (e *MissingSectionsError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, s := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "missing required sections: [" + strings.Join(quoted, ", ") + "]"
}

// UserError represents an error that should be displayed to the user with helpful context
type UserError struct {
	Message    string
	Cause      error
	Suggestion string
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// FormatUserError formats an error for user display with colors and suggestions
func FormatUserError(err error, styles *Styles) string {
	var sb strings.Builder

	userErr := toUserError(err)
	sb.WriteString(fmt.Sprintf("%s %s\n", styles.Error.Render("Error:"), userErr.Message))
	if userErr.Cause != nil {
		sb.WriteString(fmt.Sprintf("       Cause: %v\n", userErr.Cause))
	}

	suggestion := userErr.Suggestion
	if suggestion == "" {
		suggestion = getSuggestionForError(err.Error())
	}
	if suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n%s %s\n", styles.Warning.Render("Suggestion:"), suggestion))
	}

	return sb.String()
}

// toUserError maps the pipeline's error kinds onto a displayable UserError.
func toUserError(err error) *UserError {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr
	}

	var sections *MissingSectionsError
	switch {
	case errors.As(err, &sections):
		return ErrPlanValidation(sections)
	case errors.Is(err, ErrMissingAPIKey):
		return &UserError{
			Message:    "Missing API key in environment",
			Suggestion: "Export API_KEY or add 'API_KEY=...' to a .env file in the current directory.",
		}
	case errors.Is(err, ErrInputClosed):
		return &UserError{
			Message:    "No answer to the confirmation prompt",
			Cause:      err,
			Suggestion: "Drop --interactive when stdin is not a terminal.",
		}
	case errors.Is(err, ErrPathTraversal):
		return &UserError{
			Message:    "Refusing to read a path outside the working tree",
			Cause:      err,
			Suggestion: "Reference files with paths that do not contain '..' segments.",
		}
	case errors.Is(err, ErrMalformedPayload):
		return &UserError{
			Message:    "The model returned JSON that does not match the requested shape",
			Cause:      err,
			Suggestion: "Run the command again; structured output occasionally fails on very large inputs.",
		}
	case errors.Is(err, ErrInvalidResponse):
		return &UserError{Message: "Invalid response format", Cause: err}
	case errors.Is(err, ErrFileNotFound), errors.Is(err, ErrFileRead), errors.Is(err, ErrFileWrite):
		return &UserError{Message: "File processing error", Cause: err}
	case errors.Is(err, ErrRequest):
		return &UserError{Message: "Request to the text-generation service failed", Cause: err}
	}

	return &UserError{Message: err.Error()}
}

// getSuggestionForError returns a helpful suggestion based on error content
func getSuggestionForError(errStr string) string {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "status 400") || strings.Contains(errLower, "api key not valid") {
		return "Check that API_KEY holds a valid key for the configured endpoint."
	}

	if strings.Contains(errLower, "status 429") || strings.Contains(errLower, "quota") {
		return "You're being rate-limited. Wait a moment and try again, or check your API quota."
	}

	if strings.Contains(errLower, "status 404") {
		return "The configured model may not exist. Try setting TASKSAI_MODEL to a different model ID."
	}

	// AWS/Bedrock related errors
	if strings.Contains(errLower, "no valid credential") ||
		strings.Contains(errLower, "unable to sign request") ||
		strings.Contains(errLower, "security token") {
		return "Check your AWS credentials. Run 'aws configure' or set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY environment variables."
	}

	if strings.Contains(errLower, "access denied") ||
		strings.Contains(errLower, "not authorized") {
		return "Your AWS credentials may not have permission to access Bedrock. Check IAM policies for bedrock:InvokeModel permission."
	}

	if strings.Contains(errLower, "timeout") || strings.Contains(errLower, "deadline exceeded") {
		return "The request timed out. Large inputs take longer to process; try referencing fewer files."
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "network") ||
		strings.Contains(errLower, "no such host") {
		return "Check your network connection. You may be offline or behind a firewall."
	}

	return ""
}

// Common error constructors

// ErrAWSConfig creates an error for AWS configuration issues
func ErrAWSConfig(cause error) *UserError {
	return &UserError{
		Message: "Failed to initialize AWS configuration",
		Cause:   cause,
		Suggestion: `Check your AWS credentials:
       1. Run 'aws configure' to set up credentials
       2. Or set environment variables:
          export AWS_ACCESS_KEY_ID=your_key
          export AWS_SECRET_ACCESS_KEY=your_secret
          export AWS_REGION=us-east-1`,
	}
}

// ErrBedrockInvoke creates an error for Bedrock API issues
func ErrBedrockInvoke(cause error) *UserError {
	return &UserError{
		Message: "Failed to call Bedrock API",
		Cause:   fmt.Errorf("%w: %w", ErrRequest, cause),
		Suggestion: `Possible issues:
       1. Check AWS credentials and region
       2. Verify Bedrock access is enabled in your AWS account
       3. Check IAM permissions for bedrock:InvokeModel
       4. Try a different model with TASKSAI_MODEL`,
	}
}

// ErrPlanValidation creates an error for a generated plan missing sections
func ErrPlanValidation(cause *MissingSectionsError) *UserError {
	return &UserError{
		Message:    "Generated plan is incomplete",
		Cause:      cause,
		Suggestion: "The plan was not written. Run the command again, or add more detail to the task.",
	}
}
