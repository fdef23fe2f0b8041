package model

// LoginResult is returned to a successfully authenticated client.
type LoginResult struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	RealName  string `json:"realName"`
	RoleID    int64  `json:"roleId"`
	Avatar    string `json:"avatar"`
}

// TokenTypeBearer is the only token type this server issues.
const TokenTypeBearer = "Bearer"
