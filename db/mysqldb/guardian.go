package mysqldb

import (
	"context"
	"time"

	db2 "github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/db/dao"
	"github.com/hafilati/hafilati-be/model"

	"github.com/upper/db/v4"
)

type GuardianDB struct {
	sess db.Session
}

func getGuardianDB(sess db.Session) *GuardianDB {
	return &GuardianDB{sess}
}

func (gdb *GuardianDB) CreateGuardian(ctx context.Context, req *db2.WriteGuardian) (int64, error) {
	res, err := gdb.sess.SQL().
		InsertInto("guardian").
		Columns("user_id", "name", "phone", "school_id").
		Values(req.UserId, req.Name, req.Phone, req.SchoolId).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (gdb *GuardianDB) GetGuardians(ctx context.Context, schoolId *int64) ([]*model.Guardian, error) {
	selector := gdb.sess.SQL().
		Select("*").
		From("guardian")
	if schoolId != nil {
		selector = selector.Where("school_id = ?", *schoolId)
	}
	var guardians []*model.Guardian
	if err := selector.
		OrderBy("name").
		IteratorContext(ctx).
		All(&guardians); err != nil {
		return nil, err
	}
	if guardians == nil {
		guardians = []*model.Guardian{}
	}
	return guardians, nil
}

func (gdb *GuardianDB) GetGuardianById(ctx context.Context, id int64) (*model.Guardian, error) {
	var guardian model.Guardian
	if err := gdb.sess.SQL().
		Select("*").
		From("guardian").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&guardian); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &guardian, nil
}

func (gdb *GuardianDB) UpdateGuardian(ctx context.Context, id int64, req *db2.WriteGuardian) error {
	_, err := gdb.sess.SQL().
		Update("guardian").
		Set("user_id", req.UserId, "name", req.Name, "phone", req.Phone, "school_id", req.SchoolId).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

// DeleteGuardian removes the guardian and their students together so no
// student row is left pointing at a deleted guardian.
func (gdb *GuardianDB) DeleteGuardian(ctx context.Context, id int64) error {
	return gdb.sess.TxContext(ctx, func(sess db.Session) error {
		if _, err := sess.SQL().
			DeleteFrom("student").
			Where("guardian_id = ?", id).
			ExecContext(ctx); err != nil {
			return err
		}
		_, err := sess.SQL().
			DeleteFrom("guardian").
			Where("id = ?", id).
			ExecContext(ctx)
		return err
	}, nil)
}

func (gdb *GuardianDB) CreateStudent(ctx context.Context, req *db2.WriteStudent) (int64, error) {
	res, err := gdb.sess.SQL().
		InsertInto("student").
		Columns("name", "guardian_id", "school_id", "gate_id", "van_id").
		Values(req.Name, req.GuardianId, req.SchoolId, req.GateId, req.VanId).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedStudent struct {
	Id         int64         `db:"id"`
	Name       string        `db:"name"`
	GuardianId int64         `db:"guardian_id"`
	SchoolId   int64         `db:"school_id"`
	GateId     int64         `db:"gate_id"`
	VanId      dao.NullInt64 `db:"van_id"`
	CreatedAt  time.Time     `db:"created_at"`
}

func (fs *flattenedStudent) toStudent() *model.Student {
	return &model.Student{
		Id:         fs.Id,
		Name:       fs.Name,
		GuardianId: fs.GuardianId,
		SchoolId:   fs.SchoolId,
		GateId:     fs.GateId,
		VanId:      fs.VanId.AsPtr(),
		CreatedAt:  fs.CreatedAt,
	}
}

func (gdb *GuardianDB) GetStudents(ctx context.Context, query *db2.StudentsQuery) ([]*model.Student, error) {
	selector := gdb.sess.SQL().
		Select("*").
		From("student")
	if query.SchoolId != nil {
		selector = selector.And("school_id = ?", *query.SchoolId)
	}
	if query.GuardianId != nil {
		selector = selector.And("guardian_id = ?", *query.GuardianId)
	}
	if query.VanId != nil {
		selector = selector.And("van_id = ?", *query.VanId)
	}

	var flattened []flattenedStudent
	if err := selector.
		OrderBy("name").
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, err
	}
	students := make([]*model.Student, len(flattened))
	for i := range flattened {
		students[i] = flattened[i].toStudent()
	}
	return students, nil
}

func (gdb *GuardianDB) UpdateStudent(ctx context.Context, id int64, req *db2.WriteStudent) error {
	_, err := gdb.sess.SQL().
		Update("student").
		Set(
			"name", req.Name,
			"guardian_id", req.GuardianId,
			"school_id", req.SchoolId,
			"gate_id", req.GateId,
			"van_id", req.VanId,
		).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (gdb *GuardianDB) DeleteStudent(ctx context.Context, id int64) error {
	_, err := gdb.sess.SQL().
		DeleteFrom("student").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}
