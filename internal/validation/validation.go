// Package validation checks untrusted input records against the field
// constraints of each entity kind and returns normalized model records.
// It is pure: no storage awareness, no trimming, and every violated
// field is reported in one pass rather than failing on the first.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"microblog/internal/model"
)

const (
	ReasonRequired     = "Required"
	ReasonInvalidEmail = "InvalidEmail"
	ReasonLength       = "InvalidLength"
	ReasonInvalidUUID  = "InvalidUUID"
	ReasonInvalidDate  = "InvalidDate"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every field that failed, so a caller can show
// all problems at once.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return ReasonRequired
	case "email":
		return ReasonInvalidEmail
	case "min", "max":
		return ReasonLength
	case "uuid":
		return ReasonInvalidUUID
	case "datetime":
		return ReasonInvalidDate
	default:
		return "Invalid"
	}
}

func collect(err error, verr *ValidationError) {
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			verr.add(fe.Field(), reasonFor(fe))
		}
		return
	}
	verr.add("", err.Error())
}

type UserRegisterInput struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	BirthDate string
	Password  string
}

type userRegisterRules struct {
	UserID    string `json:"user_id" validate:"omitempty,uuid"`
	Email     string `json:"email" validate:"required,email,max=128"`
	FirstName string `json:"first_name" validate:"required,min=1,max=25"`
	LastName  string `json:"last_name" validate:"required,min=1,max=25"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Password  string `json:"password" validate:"required,min=8,max=25"`
}

// UserRegister validates a registration input and returns the normalized
// user record. The password is NOT placed on the record: hashing it and
// filling PasswordHash is the caller's job.
func UserRegister(in UserRegisterInput) (*model.User, error) {
	verr := &ValidationError{}
	collect(validate.Struct(userRegisterRules{
		UserID:    in.UserID,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		BirthDate: in.BirthDate,
		Password:  in.Password,
	}), verr)
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	id := in.UserID
	if id == "" {
		id = uuid.NewString()
	}

	var birth *model.Date
	if in.BirthDate != "" {
		parsed, err := model.ParseDate(in.BirthDate)
		if err != nil {
			verr.add("birth_date", ReasonInvalidDate)
			return nil, verr
		}
		birth = &parsed
	}

	return &model.User{
		ID:            id,
		Email:         in.Email,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		BirthDate:     birth,
		SchemaVersion: model.SchemaVersion,
	}, nil
}

// UserUpdateInput holds the partial replace for a user. Nil fields keep
// the stored value; a non-nil empty BirthDate clears the date.
type UserUpdateInput struct {
	FirstName *string
	LastName  *string
	BirthDate *string
}

type userUpdateRules struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=25"`
	LastName  string `json:"last_name" validate:"required,min=1,max=25"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

// UserUpdate overlays the provided fields on the current record and
// re-validates the merged result. ID and email are immutable and are
// carried over untouched.
func UserUpdate(current model.User, in UserUpdateInput) (*model.User, error) {
	merged := current
	if in.FirstName != nil {
		merged.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		merged.LastName = *in.LastName
	}

	birthRaw := ""
	if merged.BirthDate != nil {
		birthRaw = merged.BirthDate.String()
	}
	if in.BirthDate != nil {
		birthRaw = *in.BirthDate
	}

	verr := &ValidationError{}
	collect(validate.Struct(userUpdateRules{
		FirstName: merged.FirstName,
		LastName:  merged.LastName,
		BirthDate: birthRaw,
	}), verr)
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if birthRaw == "" {
		merged.BirthDate = nil
	} else {
		parsed, err := model.ParseDate(birthRaw)
		if err != nil {
			verr.add("birth_date", ReasonInvalidDate)
			return nil, verr
		}
		merged.BirthDate = &parsed
	}
	return &merged, nil
}

type TweetInput struct {
	TweetID string
	Content string
}

type tweetRules struct {
	TweetID string `json:"tweet_id" validate:"omitempty,uuid"`
	Content string `json:"content" validate:"required,min=1,max=256"`
}

// Tweet validates a tweet input and binds it to the resolved author
// snapshot.
func Tweet(in TweetInput, by model.Author) (*model.Tweet, error) {
	verr := &ValidationError{}
	collect(validate.Struct(tweetRules{
		TweetID: in.TweetID,
		Content: in.Content,
	}), verr)
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	id := in.TweetID
	if id == "" {
		id = uuid.NewString()
	}
	return &model.Tweet{
		ID:            id,
		Content:       in.Content,
		By:            by,
		SchemaVersion: model.SchemaVersion,
	}, nil
}

// TweetUpdate re-validates a tweet after replacing its content. Only the
// content is editable; author and creation time are immutable.
func TweetUpdate(current model.Tweet, content string) (*model.Tweet, error) {
	verr := &ValidationError{}
	collect(validate.Struct(tweetRules{
		TweetID: current.ID,
		Content: content,
	}), verr)
	if err := verr.orNil(); err != nil {
		return nil, err
	}
	merged := current
	merged.Content = content
	return &merged, nil
}
