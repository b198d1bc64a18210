package entities

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Zone is a geographic circle that carries an extra fee when a drop-off
// point falls inside it
type Zone struct {
	ID       string      `json:"id" db:"id"`
	Name     string      `json:"name" db:"name"`
	Center   Coordinates `json:"center"`
	RadiusKm float64     `json:"radius_km" db:"radius_km"`
	Fee      float64     `json:"fee" db:"fee"`
	IsActive bool        `json:"is_active" db:"is_active"`
}
