package user

import (
	"regexp"

	"github.com/geocoder89/birthdays/internal/apperror"
	"github.com/geocoder89/birthdays/internal/calendar"
)

const (
	MsgInvalidName    = "Invalid name, only letters allowed."
	MsgFutureBirthday = "Provided birthday is in the future!"
	namePattern       = `^[A-Za-z]+$`
)

// User is immutable once built; use Validator.NewUser for input and Restore
// for documents already persisted.
type User struct {
	name     string
	birthday calendar.Date
}

func (u User) Name() string { return u.name }
func (u User) Birthday() calendar.Date { return u.birthday }

// Restore rebuilds a stored user without validating it again.
func Restore(name string, birthday calendar.Date) User {
	return User{name: name, birthday: birthday}
}

// PutUserBody is the payload of PUT /hello/:name.
type PutUserBody struct {
	Birthday *calendar.Date `json:"dateOfBirth" binding:"required"`
}

// Validator holds the compiled name pattern. Build it once at startup and
// share it; it is safe for concurrent use.
type Validator struct {
	name *regexp.Regexp
}

func NewValidator() *Validator {
	return &Validator{name: regexp.MustCompile(namePattern)}
}

// NewUser checks the name first, then the birthday, and reports only the
// first failure.
func (v *Validator) NewUser(name string, birthday, today calendar.Date) (User, error) {
	if err := v.ValidateName(name); err != nil {
		return User{}, err
	}

	if err := ValidateBirthday(birthday, today); err != nil {
		return User{}, err
	}

	return User{name: name, birthday: birthday}, nil
}

func (v *Validator) ValidateName(name string) error {
	if !v.name.MatchString(name) {
		return apperror.BadRequest(MsgInvalidName)
	}
	return nil
}

func ValidateBirthday(birthday, today calendar.Date) error {
	if birthday.After(today) {
		return apperror.BadRequest(MsgFutureBirthday)
	}
	return nil
}
