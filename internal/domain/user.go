package domain

// Role is the access level assigned to a user account.
type Role string

const (
	RoleUser         Role = "user"
	RoleVeterinarian Role = "veterinarian"
	RoleAdmin        Role = "admin"
)

// User is the profile returned by the backend on login and from /api/auth/me.
type User struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// CreateUserRequest is the admin payload for POST /api/users.
type CreateUserRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// UpdateUserRequest is the admin payload for PUT /api/users/{id}.
// Zero-valued fields are omitted so partial updates stay partial.
type UpdateUserRequest struct {
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// UserStats is the aggregate returned by GET /api/users/stats.
type UserStats struct {
	TotalUsers    int            `json:"totalUsers"`
	ActiveUsers   int            `json:"activeUsers"`
	CountsByRole  map[Role]int   `json:"countsByRole"`
	SignupsByDate map[string]int `json:"signupsByDate,omitempty"`
}
