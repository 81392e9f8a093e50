// Copyright 2026 European Digital Reading Lab. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

// The stor package manages the storage of our entities.
package stor

import (
	"fmt"
	"os"
	"strings"
	"time"

	"log"

	"github.com/edrlab/feed-server/pkg/page"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type (

	// generic store
	dbStore struct {
		db *gorm.DB
	}

	// entity stores
	articleStore  dbStore
	activityStore dbStore

	// Store interface, giving access to specialized interfaces
	Store interface {
		Article() ArticleRepository
		Activity() ActivityRepository
	}

	// ArticleRepository interface, defining article operations.
	// Lists are cursor paginated on (sort_title, uuid).
	ArticleRepository interface {
		List(req page.Request) (*page.Response[Article], error)
		FindByAuthor(author string, req page.Request) (*page.Response[Article], error)
		Count() (int64, error)
		Get(uuid string) (*Article, error)
		Create(a *Article) error
		Update(a *Article) error
		Delete(a *Article) error
	}

	// ActivityRepository interface, defining activity operations.
	// Lists are cursor paginated on (created_at, uuid).
	ActivityRepository interface {
		List(req page.Request) (*page.Response[Activity], error)
		FindByArticle(articleID string, req page.Request) (*page.Response[Activity], error)
		FindByActor(actor string, req page.Request) (*page.Response[Activity], error)
		Count() (int64, error)
		Get(uuid string) (*Activity, error)
		Create(e *Activity) error
	}
)

// implementation of the different repository interfaces
func (s *dbStore) Article() ArticleRepository {
	return (*articleStore)(s)
}

func (s *dbStore) Activity() ActivityRepository {
	return (*activityStore)(s)
}

// List of activity actions as strings
const (
	ACTION_PUBLISH   = "publish"
	ACTION_UPDATE    = "update"
	ACTION_UNPUBLISH = "unpublish"
	ACTION_COMMENT   = "comment"
	ACTION_SHARE     = "share"
)

// Init initializes the database
func Init(dsn string) (Store, error) {
	var err error

	dialect, cnx := dbFromURI(dsn)
	if dialect == "error" {
		return nil, fmt.Errorf("incorrect database source name: %q", dsn)
	}

	// add parameters specific to the dialect
	cnx = addParamsDialectSpecific(cnx, dialect)

	// database logger
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Warn, // Log level (Silent, Error, Warn, Info)
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,        // Enable color
		},
	)

	db, err := gorm.Open(GormDialector(cnx), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		log.Printf("Failed connecting to the database: %v", err)
		return nil, err
	}

	err = performDialectSpecific(db, dialect)
	if err != nil {
		log.Printf("Failed performing dialect specific database init: %v", err)
		return nil, err
	}

	err = db.AutoMigrate(&Article{}, &Activity{})
	if err != nil {
		log.Printf("Failed performing database automigrate: %v", err)
		return nil, err
	}

	stor := &dbStore{db: db}

	return stor, nil
}

// dbFromURI
func dbFromURI(uri string) (string, string) {
	parts := strings.Split(uri, "://")
	if len(parts) != 2 {
		return "error", ""
	}
	return parts[0], parts[1]
}

// addParamsDialectSpecific takes a connection string and adds parameters specific to the SQL dialect
func addParamsDialectSpecific(cnx, dialect string) string {
	var params string
	switch dialect {
	case "sqlite3":
		params = "cache=shared&mode=rwc"
	case "mysql":
		params = "charset=utf8mb4&parseTime=True&loc=Local"
	case "postgres":
		params = "sslmode=disable"
	case "mssql":
		// nothing , so far
	default:
		log.Printf("Invalid dialect: %s", dialect)
	}
	if params == "" {
		return cnx
	}
	// the connection string may already carry its own parameters
	if strings.Contains(cnx, "?") {
		return cnx + "&" + params
	}
	return cnx + "?" + params
}

// performDialectSpecific
func performDialectSpecific(db *gorm.DB, dialect string) error {
	switch dialect {
	case "sqlite3":
		err := db.Exec("PRAGMA journal_mode = WAL").Error
		if err != nil {
			return err
		}
		err = db.Exec("PRAGMA foreign_keys = ON").Error
		if err != nil {
			return err
		}
	case "mysql":
		// nothing , so far
	case "postgres":
		// nothing , so far
	case "mssql":
		// nothing , so far
	default:
		return fmt.Errorf("invalid dialect: %s", dialect)
	}
	return nil
}
