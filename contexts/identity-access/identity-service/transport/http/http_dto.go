package httptransport

type UserDTO struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User UserDTO `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type MeResponse struct {
	User UserDTO `json:"user"`
}

type ListUsersResponse struct {
	Items []UserDTO `json:"items"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type UpdateRoleResponse struct {
	User UserDTO `json:"user"`
}

type ErrorResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirect_to,omitempty"`
}
