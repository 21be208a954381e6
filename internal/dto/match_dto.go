package dto

type StartSessionRequest struct {
	Username string `json:"username" validate:"required,min=1,max=128"`
}

type StartSessionResponse struct {
	SessionId string `json:"session_id"`
	Phase     string `json:"phase"`
	SeedCount int    `json:"seed_count"`
}

type NextTrackResponse struct {
	SessionId string         `json:"session_id"`
	Phase     string         `json:"phase"`
	Status    string         `json:"status"`
	Track     *TrackResponse `json:"track,omitempty"`
	Completed bool           `json:"completed"`
}

type SwipeRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=128"`
	SessionId string `json:"session_id" validate:"required,uuid4"`
	TrackId   string `json:"track_id" validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=like dislike"`
}

type SwipeResponse struct {
	SessionId string `json:"session_id"`
	Phase     string `json:"phase"`
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
	Likes     int    `json:"likes"`
	Dislikes  int    `json:"dislikes"`
}
