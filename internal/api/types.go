// Package api defines the JSON wire types of the HTTP surface.
package api

// Location is the wire shape of a latitude/longitude pair.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Effort is the wire shape of a recorded block of volunteer work.
type Effort struct {
	StartTime string   `json:"start_time"`
	Duration  int64    `json:"duration"`
	Location  Location `json:"location"`
}

// User is the wire shape of a volunteer profile.
type User struct {
	Username  string   `json:"username"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Efforts   []Effort `json:"efforts"`
}

// Team is the wire shape of a team with its members.
type Team struct {
	Name    string `json:"name"`
	Members []User `json:"members"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Team      int64  `json:"team"`
}

// CreateTeamRequest is the body of POST /teams.
type CreateTeamRequest struct {
	Name string `json:"name"`
}

// AddEffortRequest is the body of POST /users/:id/efforts.
type AddEffortRequest struct {
	StartTime string  `json:"start_time"`
	Duration  int64   `json:"duration"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreatedResponse reports the id assigned to a newly persisted object.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// UserRank is one entry of the user leaderboard.
type UserRank struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Effort    int64  `json:"effort"`
	Team      string `json:"team"`
}

// TeamRank is one entry of the team leaderboard.
type TeamRank struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Effort int64  `json:"effort"`
}

// BestUsersResponse is the body of GET /users/best.
type BestUsersResponse struct {
	Users []UserRank `json:"users"`
}

// BestTeamsResponse is the body of GET /teams/best.
type BestTeamsResponse struct {
	Teams []TeamRank `json:"teams"`
}

// TeamsResponse is the body of GET /teams.
type TeamsResponse struct {
	Teams []Team `json:"teams"`
}

// UsersResponse is the body of GET /users.
type UsersResponse struct {
	Users []User `json:"users"`
}

// ErrorCode classifies an error response.
type ErrorCode string

// Error codes returned by the HTTP surface.
const (
	CodeValidation   ErrorCode = "VALIDATION"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConstraint   ErrorCode = "CONSTRAINT"
	CodeUserExists   ErrorCode = "USER_EXISTS"
	CodeTeamExists   ErrorCode = "TEAM_EXISTS"
	CodeTeamNotEmpty ErrorCode = "TEAM_NOT_EMPTY"
	CodeInternal     ErrorCode = "INTERNAL"
)

// ErrorBody carries the code and message of an error response.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorResponse is the envelope of every error response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
