package models

// Operator is a bus staff account identified by employee ID.
type Operator struct {
	ID           string `json:"operatorId"`
	Name         string `json:"name"`
	EmployeeID   string `json:"employeeId"`
	PasswordHash string `json:"-"`
}
