package domain

import "time"

const DateLayout = "2006-01-02"

type Passenger struct {
	FirstName      string `json:"firstName" validate:"required,max=64"`
	LastName       string `json:"lastName" validate:"required,max=64"`
	DateOfBirth    string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	DocumentNumber string `json:"documentNumber,omitempty" validate:"omitempty,alphanum,min=6,max=9"`
}

func (p Passenger) BirthDate() (time.Time, error) {
	return time.Parse(DateLayout, p.DateOfBirth)
}

// AgeAt returns the number of whole years elapsed between birth and now.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
