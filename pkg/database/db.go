package database

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/helviojunior/brparser/pkg/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connection returns a gorm database connection for the given URI.
// Supported schemes are sqlite (sqlite:///path/to.db), postgres and mysql.
// With shouldExist, an SQLite target that does not exist yet is an error
// instead of being created.
func Connection(uri string, shouldExist bool, debug bool) (*gorm.DB, error) {
	var err error
	var c *gorm.DB

	db, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}

	config := &gorm.Config{}
	if debug {
		config.Logger = logger.Default.LogMode(logger.Info)
	} else {
		config.Logger = logger.Default.LogMode(logger.Silent)
	}

	switch db.Scheme {
	case "sqlite":
		dbpath := strings.TrimPrefix(db.Path, "/")
		if db.Host != "" {
			// sqlite://file.db parses the name as a host
			dbpath = db.Host + db.Path
		}

		if shouldExist {
			if _, err := os.Stat(dbpath); errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("sqlite database file does not exist: %s", dbpath)
			}
		}

		c, err = gorm.Open(sqlite.Open(dbpath), config)
		if err != nil {
			return nil, err
		}
	case "postgres":
		c, err = gorm.Open(postgres.Open(uri), config)
		if err != nil {
			return nil, err
		}
	case "mysql":
		pass, _ := db.User.Password()
		dsn := fmt.Sprintf("%s:%s@tcp(%s)%s?charset=utf8mb4&parseTime=True&loc=Local",
			db.User.Username(), pass, db.Host, db.Path)
		c, err = gorm.Open(mysql.Open(dsn), config)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("invalid database uri scheme. supported schemes: sqlite, postgres, mysql")
	}

	if err := c.AutoMigrate(&models.File{}, &models.Document{}); err != nil {
		return nil, err
	}

	return c, nil
}
