package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request payloads accepted by the HTTP layer. Optional fields on update
// payloads are pointers so that absent and zero values stay distinguishable.

type CreateUserDTO struct {
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Birthdate time.Time `json:"birthdate"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserDTO struct {
	FirstName *string    `json:"firstName"`
	LastName  *string    `json:"lastName"`
	Birthdate *time.Time `json:"birthdate"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken"`
}

type CreateTeamDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateTeamDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type UpdateTeamMembersDTO struct {
	Users []primitive.ObjectID `json:"users"`
}

type CreateProjectDTO struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TechStack   []string  `json:"techStack"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

type UpdateProjectDTO struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	TechStack   *[]string  `json:"techStack"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type CreateColumnDTO struct {
	Name string `json:"name"`
}

type UpdateColumnDTO struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

type UpdateColumnOrderDTO struct {
	ColumnID primitive.ObjectID `json:"columnId"`
	Order    int                `json:"order"`
}

type UpdateTaskOrderDTO struct {
	ColumnID primitive.ObjectID   `json:"columnId"`
	Tasks    []primitive.ObjectID `json:"tasks"`
}

type CreateTaskDTO struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	StartDate   time.Time          `json:"startDate"`
	EndDate     time.Time          `json:"endDate"`
	ColumnID    primitive.ObjectID `json:"columnId"`
}

type UpdateTaskDTO struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type CreateLabelDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
