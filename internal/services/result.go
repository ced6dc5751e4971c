package services

import "github.com/Arhonist/nextjs-dashboard/validation"

// ResultKind tells which way a form submission ended.
type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultInvalid
	ResultFailed
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultInvalid:
		return "invalid"
	case ResultFailed:
		return "failed"
	}
	return "unknown"
}

// Result is the outcome of a mutation: a redirect target on success, field
// errors when the input was rejected, or a generic message when the store
// failed. Exactly one of Redirect and Message/Errors is meaningful.
type Result struct {
	Kind     ResultKind
	Redirect string
	Errors   validation.Errors
	Message  string
}

func OK(target string) Result {
	return Result{Kind: ResultOK, Redirect: target}
}

func Invalid(errs validation.Errors, message string) Result {
	return Result{Kind: ResultInvalid, Errors: errs, Message: message}
}

func Failed(message string) Result {
	return Result{Kind: ResultFailed, Message: message}
}
