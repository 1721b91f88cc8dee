package models

// BlockThreshold is the penalty count at which a student loses booking rights.
const BlockThreshold = 3

type Student struct {
	ID           string `json:"studentId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Room         string `json:"room"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	PenaltyCount int    `json:"penaltyCount"`
	IsBlocked    bool   `json:"isBlocked"`
}
