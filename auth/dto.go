package auth

// RegisterRequest is the registration payload. Field names follow the wire
// contract of the existing clients.
type RegisterRequest struct {
	Nome     string `json:"nome" example:"Anna"`
	Cognome  string `json:"cognome" example:"Rossi"`
	Username string `json:"username" example:"ann"`
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" example:"ann"`
	Password string `json:"password" example:"strongpassword123"`
}

// MessageResponse is the generic acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}
