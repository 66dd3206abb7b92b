package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hafilati/hafilati-be/model"

	_ "github.com/go-sql-driver/mysql"
)

type Database interface {
	AwarenessDatabase
	SchoolDatabase
	GuardianDatabase
	FleetDatabase
	UserDatabase
	DashboardDatabase
	GetSQLDB() *sql.DB
	Close() error
}

// ErrStaleRecord is returned by updates carrying an ExpectedUpdatedAt
// that no longer matches the stored row.
var ErrStaleRecord = errors.New("record was modified by another writer")

type WriteAwarenessPost struct {
	Title          string
	Content        string
	Category       model.Category
	TargetAudience model.Audience
	Priority       model.Priority
	ImageUrl       string
	ScheduledAt    *time.Time
}

type CreateAwarenessPost struct {
	*WriteAwarenessPost
	AuthorId string
}

type UpdateAwarenessPost struct {
	*WriteAwarenessPost
	// nil skips the optimistic concurrency check (last-write-wins)
	ExpectedUpdatedAt *time.Time
}

// AwarenessListQuery filters the list server-side by lifecycle state and
// pages with a keyset cursor over (created_at, id) descending.
type AwarenessListQuery struct {
	State  model.PostState // zero value lists every state
	From   *time.Time
	LastId int64
	Limit  int16
}

type AwarenessDatabase interface {
	CreateAwarenessPost(ctx context.Context, req *CreateAwarenessPost) (postId int64, err error)
	GetAwarenessPostById(ctx context.Context, id int64) (*model.AwarenessPost, error)
	GetAwarenessPosts(ctx context.Context, query *AwarenessListQuery) ([]*model.AwarenessPost, error)
	UpdateAwarenessPost(ctx context.Context, id int64, req *UpdateAwarenessPost) error
	PublishAwarenessPost(ctx context.Context, id int64, at time.Time) error
	PublishDueAwarenessPosts(ctx context.Context, now time.Time) (published int64, err error)
	DeleteAwarenessPost(ctx context.Context, id int64) error
	IncrementAwarenessPostViews(ctx context.Context, id int64) error
}

type WriteSchool struct {
	Name    string
	Address string
	Phone   string
}

type WriteGate struct {
	Name string
	Lat  float64
	Lng  float64
}

type SchoolDatabase interface {
	CreateSchool(ctx context.Context, req *WriteSchool) (schoolId int64, err error)
	GetSchools(ctx context.Context) ([]*model.School, error)
	GetSchoolById(ctx context.Context, id int64) (*model.School, error)
	UpdateSchool(ctx context.Context, id int64, req *WriteSchool) error
	DeleteSchool(ctx context.Context, id int64) error
	CreateGate(ctx context.Context, schoolId int64, req *WriteGate) (gateId int64, err error)
	GetGatesForSchool(ctx context.Context, schoolId int64) ([]*model.Gate, error)
	UpdateGate(ctx context.Context, id int64, req *WriteGate) error
	DeleteGate(ctx context.Context, id int64) error
}

type WriteGuardian struct {
	UserId   string
	Name     string
	Phone    string
	SchoolId int64
}

type WriteStudent struct {
	Name       string
	GuardianId int64
	SchoolId   int64
	GateId     int64
	VanId      *int64
}

type StudentsQuery struct {
	SchoolId   *int64
	GuardianId *int64
	VanId      *int64
}

type GuardianDatabase interface {
	CreateGuardian(ctx context.Context, req *WriteGuardian) (guardianId int64, err error)
	GetGuardians(ctx context.Context, schoolId *int64) ([]*model.Guardian, error)
	GetGuardianById(ctx context.Context, id int64) (*model.Guardian, error)
	UpdateGuardian(ctx context.Context, id int64, req *WriteGuardian) error
	DeleteGuardian(ctx context.Context, id int64) error
	CreateStudent(ctx context.Context, req *WriteStudent) (studentId int64, err error)
	GetStudents(ctx context.Context, query *StudentsQuery) ([]*model.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *WriteStudent) error
	DeleteStudent(ctx context.Context, id int64) error
}

type WriteVan struct {
	OwnerId     string
	PlateNumber string
	Model       string
	Capacity    int
	SchoolId    *int64
}

type WriteDriver struct {
	OwnerId       string
	Name          string
	Phone         string
	LicenseNumber string
	VanId         *int64
}

// VansQuery filters by owner for the van-owner console. nil fields are
// ignored.
type VansQuery struct {
	OwnerId  *string
	SchoolId *int64
}

type FleetDatabase interface {
	CreateVan(ctx context.Context, req *WriteVan) (vanId int64, err error)
	GetVans(ctx context.Context, query *VansQuery) ([]*model.Van, error)
	GetVanById(ctx context.Context, id int64) (*model.Van, error)
	UpdateVan(ctx context.Context, id int64, req *WriteVan) error
	DeleteVan(ctx context.Context, id int64) error
	CreateDriver(ctx context.Context, req *WriteDriver) (driverId int64, err error)
	GetDrivers(ctx context.Context, ownerId *string) ([]*model.Driver, error)
	GetDriverById(ctx context.Context, id int64) (*model.Driver, error)
	UpdateDriver(ctx context.Context, id int64, req *WriteDriver) error
	DeleteDriver(ctx context.Context, id int64) error
	GetVanManifest(ctx context.Context, vanId int64) ([]*model.ManifestEntry, error)
}

type UserDatabase interface {
	CreateUser(context.Context, *model.User) error
	GetUser(context.Context, string) (*model.User, error)
}

type DashboardDatabase interface {
	GetDashboardStats(ctx context.Context) (*model.DashboardStats, error)
}
