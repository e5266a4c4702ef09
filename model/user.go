package model

type User struct {
	DTO
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;size:255" json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,min=6,max=20"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
