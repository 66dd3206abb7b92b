package mysqldb

import (
	"context"
	"time"

	db2 "github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/db/dao"
	"github.com/hafilati/hafilati-be/model"

	"github.com/upper/db/v4"
)

type FleetDB struct {
	sess db.Session
}

func getFleetDB(sess db.Session) *FleetDB {
	return &FleetDB{sess}
}

func (fdb *FleetDB) CreateVan(ctx context.Context, req *db2.WriteVan) (int64, error) {
	res, err := fdb.sess.SQL().
		InsertInto("van").
		Columns("owner_id", "plate_number", "model", "capacity", "school_id").
		Values(req.OwnerId, req.PlateNumber, req.Model, req.Capacity, req.SchoolId).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedVan struct {
	Id          int64         `db:"id"`
	OwnerId     string        `db:"owner_id"`
	PlateNumber string        `db:"plate_number"`
	Model       string        `db:"model"`
	Capacity    int           `db:"capacity"`
	SchoolId    dao.NullInt64 `db:"school_id"`
	CreatedAt   time.Time     `db:"created_at"`
}

func (fv *flattenedVan) toVan() *model.Van {
	return &model.Van{
		Id:          fv.Id,
		OwnerId:     fv.OwnerId,
		PlateNumber: fv.PlateNumber,
		Model:       fv.Model,
		Capacity:    fv.Capacity,
		SchoolId:    fv.SchoolId.AsPtr(),
		CreatedAt:   fv.CreatedAt,
	}
}

func (fdb *FleetDB) GetVans(ctx context.Context, query *db2.VansQuery) ([]*model.Van, error) {
	selector := fdb.sess.SQL().
		Select("*").
		From("van")
	if query.OwnerId != nil {
		selector = selector.And("owner_id = ?", *query.OwnerId)
	}
	if query.SchoolId != nil {
		selector = selector.And("school_id = ?", *query.SchoolId)
	}

	var flattened []flattenedVan
	if err := selector.
		OrderBy("plate_number").
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, err
	}
	vans := make([]*model.Van, len(flattened))
	for i := range flattened {
		vans[i] = flattened[i].toVan()
	}
	return vans, nil
}

func (fdb *FleetDB) GetVanById(ctx context.Context, id int64) (*model.Van, error) {
	var flattened flattenedVan
	if err := fdb.sess.SQL().
		Select("*").
		From("van").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&flattened); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return flattened.toVan(), nil
}

func (fdb *FleetDB) UpdateVan(ctx context.Context, id int64, req *db2.WriteVan) error {
	_, err := fdb.sess.SQL().
		Update("van").
		Set(
			"plate_number", req.PlateNumber,
			"model", req.Model,
			"capacity", req.Capacity,
			"school_id", req.SchoolId,
		).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

// DeleteVan unassigns the van's students and driver before removing it.
func (fdb *FleetDB) DeleteVan(ctx context.Context, id int64) error {
	return fdb.sess.TxContext(ctx, func(sess db.Session) error {
		if _, err := sess.SQL().
			Update("student").
			Set("van_id", nil).
			Where("van_id = ?", id).
			ExecContext(ctx); err != nil {
			return err
		}
		if _, err := sess.SQL().
			Update("driver").
			Set("van_id", nil).
			Where("van_id = ?", id).
			ExecContext(ctx); err != nil {
			return err
		}
		_, err := sess.SQL().
			DeleteFrom("van").
			Where("id = ?", id).
			ExecContext(ctx)
		return err
	}, nil)
}

func (fdb *FleetDB) CreateDriver(ctx context.Context, req *db2.WriteDriver) (int64, error) {
	res, err := fdb.sess.SQL().
		InsertInto("driver").
		Columns("owner_id", "name", "phone", "license_number", "van_id").
		Values(req.OwnerId, req.Name, req.Phone, req.LicenseNumber, req.VanId).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedDriver struct {
	Id            int64         `db:"id"`
	OwnerId       string        `db:"owner_id"`
	Name          string        `db:"name"`
	Phone         string        `db:"phone"`
	LicenseNumber string        `db:"license_number"`
	VanId         dao.NullInt64 `db:"van_id"`
	CreatedAt     time.Time     `db:"created_at"`
}

func (fd *flattenedDriver) toDriver() *model.Driver {
	return &model.Driver{
		Id:            fd.Id,
		OwnerId:       fd.OwnerId,
		Name:          fd.Name,
		Phone:         fd.Phone,
		LicenseNumber: fd.LicenseNumber,
		VanId:         fd.VanId.AsPtr(),
		CreatedAt:     fd.CreatedAt,
	}
}

func (fdb *FleetDB) GetDrivers(ctx context.Context, ownerId *string) ([]*model.Driver, error) {
	selector := fdb.sess.SQL().
		Select("*").
		From("driver")
	if ownerId != nil {
		selector = selector.Where("owner_id = ?", *ownerId)
	}

	var flattened []flattenedDriver
	if err := selector.
		OrderBy("name").
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, err
	}
	drivers := make([]*model.Driver, len(flattened))
	for i := range flattened {
		drivers[i] = flattened[i].toDriver()
	}
	return drivers, nil
}

func (fdb *FleetDB) GetDriverById(ctx context.Context, id int64) (*model.Driver, error) {
	var flattened flattenedDriver
	if err := fdb.sess.SQL().
		Select("*").
		From("driver").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&flattened); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return flattened.toDriver(), nil
}

func (fdb *FleetDB) UpdateDriver(ctx context.Context, id int64, req *db2.WriteDriver) error {
	_, err := fdb.sess.SQL().
		Update("driver").
		Set(
			"name", req.Name,
			"phone", req.Phone,
			"license_number", req.LicenseNumber,
			"van_id", req.VanId,
		).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (fdb *FleetDB) DeleteDriver(ctx context.Context, id int64) error {
	_, err := fdb.sess.SQL().
		DeleteFrom("driver").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (fdb *FleetDB) GetVanManifest(ctx context.Context, vanId int64) ([]*model.ManifestEntry, error) {
	var entries []*model.ManifestEntry
	if err := fdb.sess.SQL().
		Select(
			"s.id as student_id",
			"s.name as student_name",
			"g.id as gate_id",
			"g.name as gate_name",
			"g.lat as gate_lat",
			"g.lng as gate_lng",
			"gu.name as guardian_name",
			"gu.phone as guardian_phone",
		).
		From("student as s").
		Join("gate as g").On("s.gate_id = g.id").
		Join("guardian as gu").On("s.guardian_id = gu.id").
		Where("s.van_id = ?", vanId).
		OrderBy("g.name", "s.name").
		IteratorContext(ctx).
		All(&entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*model.ManifestEntry{}
	}
	return entries, nil
}
