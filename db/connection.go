package db

import (
	"database/sql"
	"fmt"
	stdlog "log"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseConnection struct {
	db    *gorm.DB
	sqlDb *sql.DB
}

var (
	connection     *DatabaseConnection
	connectionOnce sync.Once
	connectionMu   sync.RWMutex
)

// Connection returns the shared database connection, opening it on first use
func Connection() *DatabaseConnection {
	connectionOnce.Do(func() {
		c := InitDb()
		connectionMu.Lock()
		if connection == nil {
			connection = c
		}
		connectionMu.Unlock()
	})
	connectionMu.RLock()
	defer connectionMu.RUnlock()
	return connection
}

// SetConnection replaces the shared connection, mostly useful for tests
func SetConnection(c *DatabaseConnection) {
	connectionOnce.Do(func() {})
	connectionMu.Lock()
	connection = c
	connectionMu.Unlock()
}

// InitDb opens the database configured through DATABASE_TYPE (sqlite or postgres)
func InitDb() *DatabaseConnection {
	viper.AutomaticEnv()

	dialector, err := dialectorFromConfig()
	if err != nil {
		log.Error().Err(err).Msg("Invalid database configuration")
		os.Exit(1)
	}
	conn, err := NewConnection(dialector)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}
	return conn
}

func dialectorFromConfig() (gorm.Dialector, error) {
	dbType := viper.GetString("DATABASE_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	switch dbType {
	case "sqlite":
		path := viper.GetString("SQLITE_PATH")
		if path == "" {
			path = viper.GetString("db.sqlite.path")
		}
		if path == "" {
			path = "wsdlwizard.db"
		}
		return sqlite.Open(path), nil
	case "postgres":
		dsn := viper.GetString("POSTGRES_DSN")
		if dsn == "" {
			return nil, fmt.Errorf("POSTGRES_DSN environment variable not set")
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unknown database type %q", dbType)
	}
}

// NewConnection opens a gorm connection with the given dialector and migrates the schema
func NewConnection(dialector gorm.Dialector) (*DatabaseConnection, error) {
	newLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&Workspace{}, &History{}, &WsdlDiscovery{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database connection: %w", err)
	}

	maxIdle := viper.GetInt("db.max_idle_conns")
	if maxIdle <= 0 {
		maxIdle = 5
	}
	maxOpen := viper.GetInt("db.max_open_conns")
	if maxOpen <= 0 {
		maxOpen = 50
	}
	lifetime := viper.GetDuration("db.conn_max_lifetime")
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(lifetime)

	return &DatabaseConnection{
		db:    db,
		sqlDb: sqlDB,
	}, nil
}

func (d *DatabaseConnection) Close() error {
	return d.sqlDb.Close()
}

// NewInMemoryConnection opens a private in-memory sqlite database. A single
// underlying connection is kept so every query sees the same database.
func NewInMemoryConnection(name string) (*DatabaseConnection, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := NewConnection(sqlite.Open(dsn))
	if err != nil {
		return nil, err
	}
	conn.sqlDb.SetMaxOpenConns(1)
	conn.sqlDb.SetMaxIdleConns(1)
	conn.sqlDb.SetConnMaxLifetime(0)
	return conn, nil
}
