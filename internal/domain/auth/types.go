package auth

import "time"

// Config drives token issuance and validation.
type Config struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// Claims are extracted from a validated token.
type Claims struct {
	EmployeeID int64     `json:"employeeId"`
	Email      string    `json:"email,omitempty"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// IssueRequest names the employee a token is minted for.
type IssueRequest struct {
	EmployeeID int64  `json:"employeeId"`
	Email      string `json:"email"`
}

// Token is a signed bearer token.
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
