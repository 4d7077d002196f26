package models

import "time"

// User is a platform customer (or garage owner) account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PhoneNumber  string    `bson:"phone_number" json:"phone_number,omitempty"`
	Password     string    `bson:"-" json:"password,omitempty"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Vehicles     []Vehicle `bson:"vehicles,omitempty" json:"vehicles,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Vehicle is a customer's registered vehicle, embedded on the user record.
type Vehicle struct {
	ID           string `bson:"id" json:"id"`
	Make         string `bson:"make" json:"make"`
	Model        string `bson:"model" json:"model"`
	Year         int    `bson:"year" json:"year,omitempty"`
	LicensePlate string `bson:"license_plate" json:"license_plate,omitempty"`
}
