package models

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DateLayout is the wire and storage format for menu and voting dates.
const DateLayout = "2006-01-02"

// Request types

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RestaurantRequest struct {
	Name string `json:"name"`
}

type DishRequest struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// MenuItemRequest is one entry of a menu payload; price is in minor
// currency units.
type MenuItemRequest struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type MenuRequest struct {
	Items []MenuItemRequest `json:"items"`
}

type CastVoteRequest struct {
	RestaurantID string `json:"restaurant_id"`
}

// Response types

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Domain types

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never expose in JSON
	Role         string `json:"role"`
	RegisteredAt string `json:"registered_at"`
}

type Restaurant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type Dish struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
}

type MenuItem struct {
	ID     string `json:"id"`
	MenuID string `json:"menu_id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
}

type Menu struct {
	ID           string     `json:"id"`
	RestaurantID string     `json:"restaurant_id"`
	Date         string     `json:"date"`
	Items        []MenuItem `json:"items"`
}

type Vote struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	VotingDate   string `json:"voting_date"`
	RestaurantID string `json:"restaurant_id"`
}

// RestaurantWithMenu is the ballot view: a restaurant together with its
// menu for the requested date.
type RestaurantWithMenu struct {
	Restaurant Restaurant `json:"restaurant"`
	Menu       Menu       `json:"menu"`
}

// VoteCount is one row of the per-restaurant tally for a date.
type VoteCount struct {
	RestaurantID   string `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name"`
	Votes          int    `json:"votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
