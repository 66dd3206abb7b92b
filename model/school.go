package model

import "time"

type School struct {
	Id        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	Phone     string    `db:"phone" json:"phone"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Gate is a named pickup/dropoff point at a school. Coordinates are
// stored as plain decimals; geocoding happens in the consoles.
type Gate struct {
	Id        int64     `db:"id" json:"id"`
	SchoolId  int64     `db:"school_id" json:"schoolId"`
	Name      string    `db:"name" json:"name"`
	Lat       float64   `db:"lat" json:"lat"`
	Lng       float64   `db:"lng" json:"lng"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
