package db

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// The persisted layout is fixed: ids are unique only within the owning
// user, so projects and tasks carry composite primary keys and the task ->
// project reference is a composite foreign key.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		hash TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		inscription_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		profile_picture TEXT DEFAULT 'default-avatar.png',
		bio TEXT,
		last_login TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER,
		user_id INTEGER,
		title TEXT NOT NULL,
		description TEXT,
		detailed_description TEXT,
		start_date DATE DEFAULT CURRENT_DATE,
		deadline DATE,
		status TEXT CHECK(status IN ('to do', 'in progress', 'done', 'blocked')) DEFAULT 'to do',
		priority TEXT CHECK(priority IN ('low', 'medium', 'high', 'urgent')) DEFAULT 'medium',
		PRIMARY KEY (id, user_id),
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER,
		user_id INTEGER,
		project_id INTEGER,
		title TEXT NOT NULL,
		description TEXT,
		detailed_description TEXT,
		creation_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		deadline TIMESTAMP,
		status TEXT CHECK(status IN ('to do', 'in progress', 'done', 'blocked')) DEFAULT 'to do',
		priority TEXT CHECK(priority IN ('low', 'medium', 'high', 'urgent')) DEFAULT 'medium',
		completed_date TIMESTAMP,
		PRIMARY KEY (id, user_id),
		FOREIGN KEY (user_id) REFERENCES users(id),
		FOREIGN KEY (project_id, user_id) REFERENCES projects(id, user_id)
	)`,
}

func ConnectDatabase(path string) error {
	var err error

	DB, err = gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	for _, stmt := range schema {
		if err := DB.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
