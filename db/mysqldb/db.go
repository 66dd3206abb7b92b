package mysqldb

import (
	"database/sql"
	"fmt"

	"github.com/hafilati/hafilati-be/config"
	db2 "github.com/hafilati/hafilati-be/db"

	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"
)

type MySQLDB struct {
	*AwarenessDB
	*SchoolDB
	*GuardianDB
	*FleetDB
	*UserDB
	*DashboardDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg *config.Config) (db2.Database, error) {
	sqlDB, err := sql.Open("mysql",
		fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=true&parseTime=true",
			cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBName))
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &MySQLDB{
		AwarenessDB: getAwarenessDB(sess),
		SchoolDB:    getSchoolDB(sess),
		GuardianDB:  getGuardianDB(sess),
		FleetDB:     getFleetDB(sess),
		UserDB:      getUserDB(sess),
		DashboardDB: getDashboardDB(sess),
		sess:        sess,
		sqlDB:       sqlDB,
	}, nil
}

func (mdb *MySQLDB) GetSQLDB() *sql.DB {
	return mdb.sqlDB
}

func (mdb *MySQLDB) Close() error {
	return mdb.sess.Close()
}
