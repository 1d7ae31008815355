package domain

// Field names a validated input.
type Field string

const (
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// Reason identifies the rule that rejected an input. It is logged and counted,
// never returned to API callers.
type Reason string

const (
	ReasonRequired     Reason = "required"
	ReasonWhitespace   Reason = "whitespace"
	ReasonBlank        Reason = "blank"
	ReasonSQLInjection Reason = "sql_injection"
	ReasonXSS          Reason = "xss"
	ReasonHTML         Reason = "html"
	ReasonNonASCII     Reason = "non_ascii"
	ReasonEmailFormat  Reason = "email_format"
)

// Outcome is the verdict of the input validator. The zero value is Valid.
type Outcome struct {
	Field  Field
	Reason Reason
}

// Valid returns an accepting Outcome.
func Valid() Outcome {
	return Outcome{}
}

// Rejected returns an Outcome rejecting field for reason.
func Rejected(field Field, reason Reason) Outcome {
	return Outcome{Field: field, Reason: reason}
}

// IsValid reports whether the input was accepted.
func (o Outcome) IsValid() bool {
	return o.Reason == ""
}

// Err converts the outcome into the error surfaced to callers: a field-specific
// error for missing input, ErrInvalidCredentials for every other rejection.
func (o Outcome) Err() error {
	switch {
	case o.IsValid():
		return nil
	case o.Reason == ReasonRequired && o.Field == FieldEmail:
		return ErrEmailRequired
	case o.Reason == ReasonRequired && o.Field == FieldPassword:
		return ErrPasswordRequired
	default:
		return ErrInvalidCredentials
	}
}
