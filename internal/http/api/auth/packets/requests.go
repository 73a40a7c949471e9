package packets

// LoginRequest is accepted as JSON or as a form.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username"  binding:"required,min=3,max=50"`
	Email    string `json:"email"     binding:"required,email"`
	FullName string `json:"full_name" binding:"required,max=100"`
	Password string `json:"password"  binding:"required,min=8"`
}
