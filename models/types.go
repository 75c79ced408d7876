package models

import (
	"time"

	"github.com/danielhkuo/namecloud/cloud"
	"github.com/danielhkuo/namecloud/info"
	"github.com/danielhkuo/namecloud/people"
)

// Error message constants
const (
	InvalidCredentials = "You entered invalid credentials!"
	DatabaseError      = "Whoops! Error connecting to the database, please try again!"
	UnknownPerson      = "Please pick someone from the list."
)

// Cloud sources
const (
	SourcePeople = "people"
	SourceUser   = "user"
)

// Request types

type VoteRequest struct {
	Name string `json:"name"`
}

type ResetRequest struct {
	Key string `json:"key"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AddNameRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type RegisterResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Names    int    `json:"names"`
}

type LoginResponse struct {
	Message   string    `json:"message"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
	People int    `json:"people"`
}

// Page parameters. Field names follow the page templates, which the
// ?raw=1 variants return verbatim.

type HomePage struct {
	Results      bool            `json:"results,omitempty"`
	People       []people.Person `json:"people"`
	OptionNames  []string        `json:"optionNames"`
	OptionCounts []int           `json:"optionCounts"`
	TotalVotes   int             `json:"totalVotes"`
	Categories   []string        `json:"categories"`
	Category     string          `json:"category,omitempty"`
	Username     string          `json:"username,omitempty"`
	Error        string          `json:"error,omitempty"`
}

type AdminPage struct {
	OptionHistory []LogEntry `json:"optionHistory"`
	Failed        string     `json:"failed,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// Domain types

// FeedItem is one entry of the feed the cloud is built from
type FeedItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	WikiLink string `json:"wiki_link,omitempty"`
	Votes    int    `json:"votes,omitempty"`
}

// LogEntry is one row of the vote log
type LogEntry struct {
	Choice string    `json:"choice"`
	Time   time.Time `json:"time"`
}

type CloudResponse struct {
	Source  string             `json:"source"`
	Canvas  cloud.Canvas       `json:"canvas"`
	Seed    uint64             `json:"seed"`
	Items   []cloud.PlacedItem `json:"items"`
	Dropped []cloud.Dropped    `json:"dropped,omitempty"`
	Total   int                `json:"total"`
}

type InfoResponse struct {
	*info.Info
	Bio    string         `json:"bio,omitempty"`
	Votes  int            `json:"votes"`
	Quotes []people.Quote `json:"quotes,omitempty"`
}
