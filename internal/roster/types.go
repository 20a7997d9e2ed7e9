package roster

import (
	"database/sql"
	"errors"
	"sync"
)

// store handles all database operations for the roster.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ErrPlayerNotFound is returned when a player id does not exist.
var ErrPlayerNotFound = errors.New("player not found")

// PlayerInfo represents a player on the agency's roster.
type PlayerInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Club        string `json:"club"`
	Nationality string `json:"nationality"`
	DateOfBirth string `json:"date_of_birth"`
	SquadNumber int    `json:"squad_number"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}
