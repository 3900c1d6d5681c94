package database

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iliyamo/periodical-store/internal/config"
	"github.com/iliyamo/periodical-store/internal/model"
)

// Supported values of DB_DRIVER.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// newLogger reports slow queries and errors.  A missing row is an expected
// outcome (a 404) and is not logged.
func newLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Open connects to the configured database and verifies the connection.
func Open(cfg config.DB) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger(log.New(os.Stdout, "\r\n", log.LstdFlags)),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Pool settings
	if cfg.Driver == DriverSQLite {
		// one writer; shared-cache memory databases vanish with their last connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

func dialectorFor(cfg config.DB) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverMySQL, "":
		return mysql.Open(MySQLDSN(cfg)), nil
	case DriverPostgres:
		return postgres.Open(PostgresDSN(cfg)), nil
	case DriverSQLite:
		return sqlite.Open(cfg.Name), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

// MySQLDSN builds the go-sql-driver DSN.  parseTime=true maps DATETIME to
// time.Time and loc=UTC keeps times consistent.
func MySQLDSN(cfg config.DB) string {
	mc := mysqldrv.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Pass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// PostgresDSN builds a keyword/value DSN for pgx.
func PostgresDSN(cfg config.DB) string {
	port := cfg.Port
	if port == "" || port == "3306" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Pass, cfg.Name, port)
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Publication{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Review{},
		&model.Subscription{},
	)
}

// SupportsRowLocks reports whether SELECT ... FOR UPDATE is meaningful for
// db's dialect.  SQLite serialises writers itself and rejects the clause.
func SupportsRowLocks(db *gorm.DB) bool {
	switch db.Dialector.Name() {
	case DriverMySQL, DriverPostgres:
		return true
	default:
		return false
	}
}
