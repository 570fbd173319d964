package models

import "time"

type Member struct {
	ID           string    `json:"id" db:"id" yaml:"id"`
	Name         string    `json:"name" db:"name" yaml:"name"`
	Email        *string   `json:"email,omitempty" db:"email" yaml:"email,omitempty"`
	PasswordHash string    `json:"-" db:"password_hash" yaml:"password_hash,omitempty"`
	IsGuest      bool      `json:"is_guest" db:"is_guest" yaml:"is_guest"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" yaml:"created_at"`
}
