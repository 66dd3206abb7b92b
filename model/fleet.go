package model

import "time"

type Van struct {
	Id          int64     `db:"id" json:"id"`
	OwnerId     string    `db:"owner_id" json:"ownerId"`
	PlateNumber string    `db:"plate_number" json:"plateNumber"`
	Model       string    `db:"model" json:"model"`
	Capacity    int       `db:"capacity" json:"capacity"`
	SchoolId    *int64    `db:"school_id" json:"schoolId,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type Driver struct {
	Id            int64     `db:"id" json:"id"`
	OwnerId       string    `db:"owner_id" json:"ownerId"`
	Name          string    `db:"name" json:"name"`
	Phone         string    `db:"phone" json:"phone"`
	LicenseNumber string    `db:"license_number" json:"licenseNumber"`
	VanId         *int64    `db:"van_id" json:"vanId,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// ManifestEntry is one student row of a van's pickup manifest, joined
// with the gate and guardian contact needed at the curb.
type ManifestEntry struct {
	StudentId     int64   `db:"student_id" json:"studentId"`
	StudentName   string  `db:"student_name" json:"studentName"`
	GateId        int64   `db:"gate_id" json:"gateId"`
	GateName      string  `db:"gate_name" json:"gateName"`
	GateLat       float64 `db:"gate_lat" json:"gateLat"`
	GateLng       float64 `db:"gate_lng" json:"gateLng"`
	GuardianName  string  `db:"guardian_name" json:"guardianName"`
	GuardianPhone string  `db:"guardian_phone" json:"guardianPhone"`
}

// ManifestGate groups the manifest per gate in pickup order.
type ManifestGate struct {
	GateId   int64            `json:"gateId"`
	GateName string           `json:"gateName"`
	Lat      float64          `json:"lat"`
	Lng      float64          `json:"lng"`
	Students []*ManifestEntry `json:"students"`
}
