package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FirstName    string               `bson:"firstName" json:"firstName"`
	LastName     string               `bson:"lastName" json:"lastName"`
	Email        string               `bson:"email" json:"email"`
	Password     string               `bson:"password" json:"-"`
	Birthdate    time.Time            `bson:"birthdate" json:"birthdate"`
	Teams        []primitive.ObjectID `bson:"teams" json:"teams"`
	Tasks        []primitive.ObjectID `bson:"tasks" json:"tasks"`
	RefreshToken string               `bson:"refreshToken,omitempty" json:"-"`
	CreatedAt    time.Time            `bson:"createdAt,omitempty" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt,omitempty" json:"updatedAt"`
}
