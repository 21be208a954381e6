package dto

import "time"

type LibraryEntryResponse struct {
	Track   TrackResponse `json:"track"`
	Source  string        `json:"source"`
	AddedAt time.Time     `json:"added_at"`
}

type LibraryResponse struct {
	Username string                 `json:"username"`
	Count    int                    `json:"count"`
	Entries  []LibraryEntryResponse `json:"entries"`
}

type AddLibraryTrackRequest struct {
	Username string `json:"username" validate:"required,min=1,max=128"`
	TrackId  string `json:"track_id" validate:"required"`
}

type AddLibraryTrackResponse struct {
	TrackId string `json:"track_id"`
	Added   bool   `json:"added"`
}

type RemoveLibraryTrackResponse struct {
	TrackId string `json:"track_id"`
	Removed bool   `json:"removed"`
}
