package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=128"`
}

type LoginResponse struct {
	Username      string `json:"username"`
	Created       bool   `json:"created"`
	LikesCount    int    `json:"likes_count"`
	DislikesCount int    `json:"dislikes_count"`
}
