package model

import "time"

type Guardian struct {
	Id        int64     `db:"id" json:"id"`
	UserId    string    `db:"user_id" json:"userId,omitempty"`
	Name      string    `db:"name" json:"name"`
	Phone     string    `db:"phone" json:"phone"`
	SchoolId  int64     `db:"school_id" json:"schoolId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Student struct {
	Id         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	GuardianId int64     `db:"guardian_id" json:"guardianId"`
	SchoolId   int64     `db:"school_id" json:"schoolId"`
	GateId     int64     `db:"gate_id" json:"gateId"`
	VanId      *int64    `db:"van_id" json:"vanId,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
