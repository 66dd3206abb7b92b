package mysqldb

import (
	"context"

	db2 "github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/model"

	"github.com/upper/db/v4"
)

type SchoolDB struct {
	sess db.Session
}

func getSchoolDB(sess db.Session) *SchoolDB {
	return &SchoolDB{sess}
}

func (sdb *SchoolDB) CreateSchool(ctx context.Context, req *db2.WriteSchool) (int64, error) {
	res, err := sdb.sess.SQL().
		InsertInto("school").
		Columns("name", "address", "phone").
		Values(req.Name, req.Address, req.Phone).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (sdb *SchoolDB) GetSchools(ctx context.Context) ([]*model.School, error) {
	var schools []*model.School
	if err := sdb.sess.SQL().
		Select("*").
		From("school").
		OrderBy("name").
		IteratorContext(ctx).
		All(&schools); err != nil {
		return nil, err
	}
	if schools == nil {
		schools = []*model.School{}
	}
	return schools, nil
}

func (sdb *SchoolDB) GetSchoolById(ctx context.Context, id int64) (*model.School, error) {
	var school model.School
	if err := sdb.sess.SQL().
		Select("*").
		From("school").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&school); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &school, nil
}

func (sdb *SchoolDB) UpdateSchool(ctx context.Context, id int64, req *db2.WriteSchool) error {
	_, err := sdb.sess.SQL().
		Update("school").
		Set("name", req.Name, "address", req.Address, "phone", req.Phone).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

// DeleteSchool removes the school and its gates in one transaction.
func (sdb *SchoolDB) DeleteSchool(ctx context.Context, id int64) error {
	return sdb.sess.TxContext(ctx, func(sess db.Session) error {
		if _, err := sess.SQL().
			DeleteFrom("gate").
			Where("school_id = ?", id).
			ExecContext(ctx); err != nil {
			return err
		}
		_, err := sess.SQL().
			DeleteFrom("school").
			Where("id = ?", id).
			ExecContext(ctx)
		return err
	}, nil)
}

func (sdb *SchoolDB) CreateGate(ctx context.Context, schoolId int64, req *db2.WriteGate) (int64, error) {
	res, err := sdb.sess.SQL().
		InsertInto("gate").
		Columns("school_id", "name", "lat", "lng").
		Values(schoolId, req.Name, req.Lat, req.Lng).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (sdb *SchoolDB) GetGatesForSchool(ctx context.Context, schoolId int64) ([]*model.Gate, error) {
	var gates []*model.Gate
	if err := sdb.sess.SQL().
		Select("*").
		From("gate").
		Where("school_id = ?", schoolId).
		OrderBy("name").
		IteratorContext(ctx).
		All(&gates); err != nil {
		return nil, err
	}
	if gates == nil {
		gates = []*model.Gate{}
	}
	return gates, nil
}

func (sdb *SchoolDB) UpdateGate(ctx context.Context, id int64, req *db2.WriteGate) error {
	_, err := sdb.sess.SQL().
		Update("gate").
		Set("name", req.Name, "lat", req.Lat, "lng", req.Lng).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (sdb *SchoolDB) DeleteGate(ctx context.Context, id int64) error {
	_, err := sdb.sess.SQL().
		DeleteFrom("gate").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}
