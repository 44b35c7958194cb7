package mailer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Job is one composed email: the unit the scheduler fires.
// A Job is treated as immutable once a send has been triggered.
type Job struct {
	ID             string   `yaml:"id,omitempty" json:"id"`
	Sender         string   `yaml:"from" json:"from" validate:"required,email"`
	Recipients     []string `yaml:"to" json:"to" validate:"required,min=1,dive,email"`
	Subject        string   `yaml:"subject,omitempty" json:"subject,omitempty"`
	Body           string   `yaml:"body" json:"body"`
	AttachmentPath string   `yaml:"attach,omitempty" json:"attach,omitempty"`
	Markdown       bool     `yaml:"markdown,omitempty" json:"markdown,omitempty"`
}

// NewJob returns a Job with a fresh ID.
// recipients is the raw comma separated field, see Recipients.
func NewJob(sender, recipients, body string) Job {
	return Job{
		ID:         uuid.NewString(),
		Sender:     strings.TrimSpace(sender),
		Recipients: Recipients(recipients),
		Body:       body,
	}
}

// Clone returns a deep copy of j.
func (j Job) Clone() Job {
	j.Recipients = append([]string(nil), j.Recipients...)
	return j
}

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the sender and recipient addresses.
// It returns ErrInvalidSender, ErrNoRecipient or ErrInvalidRecipient joined with the
// offending value.
func (j Job) Validate() error {
	err := validate.Struct(j)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fieldError(fe))
	}
	return errors.Join(errs...)
}

func fieldError(fe validator.FieldError) error {
	switch {
	case fe.StructField() == "Sender":
		return fmt.Errorf("%w: %q", ErrInvalidSender, fe.Value())
	case fe.StructField() == "Recipients":
		return ErrNoRecipient
	case strings.HasPrefix(fe.StructField(), "Recipients["):
		return fmt.Errorf("%w: %q", ErrInvalidRecipient, fe.Value())
	default:
		return fmt.Errorf("mailer: %s failed %q check", fe.Field(), fe.Tag())
	}
}
