package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MaxMessageLen is the longest accepted feedback message, in characters.
const MaxMessageLen = 2000

// Validation errors returned by Feedback.Normalize and Store.SaveFeedback.
var (
	ErrEmptyMessage   = errors.New("storage: feedback message is required")
	ErrMessageTooLong = errors.New("storage: feedback message is too long")
	ErrInvalidKind    = errors.New("storage: unknown feedback kind")
	ErrInvalidEmail   = errors.New("storage: invalid email address")
)

// Kind classifies a feedback entry.
type Kind string

const (
	KindGeneral     Kind = "general"
	KindGameIdea    Kind = "game-idea"
	KindImprovement Kind = "improvement"
	KindBug         Kind = "bug"
	KindOther       Kind = "other"
)

// KindRule is the validation rule every stored kind must satisfy.
const KindRule = "oneof=general game-idea improvement bug other"

// Kinds lists every accepted kind in display order.
var Kinds = []Kind{KindGeneral, KindGameIdea, KindImprovement, KindBug, KindOther}

// Label returns a human-readable name.
func (k Kind) Label() string {
	switch k {
	case KindGeneral:
		return "General feedback"
	case KindGameIdea:
		return "Game idea"
	case KindImprovement:
		return "Improvement"
	case KindBug:
		return "Bug report"
	case KindOther:
		return "Other"
	default:
		return string(k)
	}
}

// Valid reports whether k is one of Kinds.
func (k Kind) Valid() bool {
	return validate.Var(string(k), "required,"+KindRule) == nil
}

// Feedback is a single message sent by a player.
type Feedback struct {
	ID        int64     `json:"id"`
	Ref       string    `json:"ref"`
	Kind      Kind      `json:"kind" validate:"oneof=general game-idea improvement bug other"`
	Message   string    `json:"message" validate:"required,max=2000"`
	Email     string    `json:"email,omitempty" validate:"omitempty,email"`
	Source    string    `json:"source"` // tui, cli, web or ssh:<user>
	CreatedAt time.Time `json:"created_at"`
}

// Normalize trims the fields, defaults an empty kind to general and
// validates what is left.
func (f *Feedback) Normalize() error {
	f.Message = strings.TrimSpace(f.Message)
	f.Email = strings.TrimSpace(f.Email)
	if f.Kind == "" {
		f.Kind = KindGeneral
	}

	return ValidationError(validate.Struct(f))
}

var validate = validator.New()

// fieldErrors maps a failed field onto its sentinel error.
var fieldErrors = map[string]error{
	"Kind":    ErrInvalidKind,
	"Message": ErrEmptyMessage,
	"Email":   ErrInvalidEmail,
}

// ValidationError translates the first failure in a validator error onto
// the package sentinels. Other errors are returned unchanged. It also
// serves request structs whose field names match Feedback's.
func ValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	if fe.Field() == "Message" && fe.Tag() == "max" {
		return ErrMessageTooLong
	}
	if sentinel, ok := fieldErrors[fe.Field()]; ok {
		return sentinel
	}
	return err
}
