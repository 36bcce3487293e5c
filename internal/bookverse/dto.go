package bookverse

// Wire types for the BookVerse REST API. Field names follow the backend's
// snake_case JSON.

// userDTO is the user record shape returned by the auth endpoints
type userDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// authResponse is returned by /api/auth/login and /api/auth/register
type authResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        userDTO `json:"user"`
}

// loginRequest is the /api/auth/login payload
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest is the /api/auth/register payload
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// bookDTO is the book record shape used by all /api/books endpoints
type bookDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	CoverImage  *string `json:"cover_image"`
	IsFeatured  bool    `json:"is_featured"`
	CTAText     string  `json:"cta_button_text"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// errorResponse is the backend's error payload (FastAPI style)
type errorResponse struct {
	Detail string `json:"detail"`
}
