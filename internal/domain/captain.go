package domain

import "time"

// CaptainAvailability is the latest presence and position a captain reported.
type CaptainAvailability struct {
	CaptainID string    `db:"captain_id"`
	Lat       *float64  `db:"lat"`
	Lng       *float64  `db:"lng"`
	IsOnline  bool      `db:"is_online"`
	LastSeen  time.Time `db:"last_seen"`
}

// NearbyCaptain is an online, approved captain within a search radius.
type NearbyCaptain struct {
	CaptainID  string  `db:"captain_id" json:"captainId"`
	Name       string  `db:"name" json:"name"`
	Phone      string  `db:"phone" json:"phone"`
	Lat        float64 `db:"lat" json:"lat"`
	Lng        float64 `db:"lng" json:"lng"`
	DistanceKm float64 `db:"distance_km" json:"distance"`
}
