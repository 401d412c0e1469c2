package user

import (
	"fmt"

	"github.com/geocoder89/birthdays/internal/calendar"
)

// Document is the persisted shape of a user, one per name in the users
// collection.
type Document struct {
	Name        string `json:"name" bson:"name"`
	DateOfBirth string `json:"dateOfBirth" bson:"dateOfBirth"`
}

func ToDocument(u User) Document {
	return Document{
		Name:        u.name,
		DateOfBirth: u.birthday.String(),
	}
}

func FromDocument(doc Document) (User, error) {
	birthday, err := calendar.ParseDate(doc.DateOfBirth)
	if err != nil {
		return User{}, fmt.Errorf("decoding stored user %q: %w", doc.Name, err)
	}

	return Restore(doc.Name, birthday), nil
}
