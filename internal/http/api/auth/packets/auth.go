package packets

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Name     *string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// SessionResponse is what register and login hand back to the client.
type SessionResponse struct {
	Token     string  `json:"token"`
	UserID    int     `json:"userId"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	ExpiresAt string  `json:"expiresAt"`
	LastLogin *string `json:"lastLogin"`
}

type ProfileResponse struct {
	UserID         int     `json:"userId"`
	Email          string  `json:"email"`
	Name           *string `json:"name"`
	CreatedAt      string  `json:"createdAt"`
	LastLogin      *string `json:"lastLogin"`
	ActiveSessions int     `json:"activeSessions"`
}

type StatsResponse struct {
	TotalUsers     int `json:"totalUsers"`
	ActiveSessions int `json:"activeSessions"`
}
