package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// Migration represents a database migration
type Migration struct {
	ID   string
	Up   func(*gorm.DB) error
	Down func(*gorm.DB) error
}

var migrations = make(map[string]Migration)

// Register adds a new migration to the registry. Registering the same id
// again replaces the previous entry.
func Register(id string, up, down func(*gorm.DB) error) {
	migrations[id] = Migration{
		ID:   id,
		Up:   up,
		Down: down,
	}
}

// MigrationRecord represents a record of executed migrations
type MigrationRecord struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

func sortedIDs() []string {
	ids := make([]string, 0, len(migrations))
	for id := range migrations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RunMigrations executes all pending migrations in id order.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var executed []MigrationRecord
	if err := db.Find(&executed).Error; err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}
	done := make(map[string]bool, len(executed))
	for _, m := range executed {
		done[m.ID] = true
	}

	for _, id := range sortedIDs() {
		if done[id] {
			continue
		}
		migration := migrations[id]
		logger.Info("Running migration", "id", id)
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{ID: id}).Error
		})
		if err != nil {
			return fmt.Errorf("failed to run migration %s: %w", id, err)
		}
		logger.Info("Completed migration", "id", id)
	}
	return nil
}

// Rollback reverts the most recently applied migration that has a down step.
// It returns the reverted id, or "" when nothing could be rolled back.
func Rollback(db *gorm.DB) (string, error) {
	var executed []MigrationRecord
	if err := db.Order("id desc").Find(&executed).Error; err != nil {
		return "", fmt.Errorf("failed to get executed migrations: %w", err)
	}
	for _, rec := range executed {
		migration, ok := migrations[rec.ID]
		if !ok || migration.Down == nil {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&MigrationRecord{}, "id = ?", rec.ID).Error
		})
		if err != nil {
			return "", fmt.Errorf("failed to roll back migration %s: %w", rec.ID, err)
		}
		logger.Info("Rolled back migration", "id", rec.ID)
		return rec.ID, nil
	}
	return "", nil
}

// Applied lists the ids recorded as executed, in order.
func Applied(db *gorm.DB) ([]string, error) {
	var executed []MigrationRecord
	if err := db.Order("id").Find(&executed).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(executed))
	for _, m := range executed {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// LoadSQLMigrations registers every NNN_name.up.sql file under dir of fsys,
// paired with NNN_name.down.sql when present.
func LoadSQLMigrations(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	read := func(name string) (string, error) {
		content, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("failed to read migration file %s: %w", name, err)
		}
		return string(content), nil
	}
	exec := func(statement string) func(*gorm.DB) error {
		return func(db *gorm.DB) error {
			return db.Exec(statement).Error
		}
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		id := strings.TrimSuffix(name, ".up.sql")
		up, err := read(name)
		if err != nil {
			return err
		}

		var down func(*gorm.DB) error
		if _, err := fs.Stat(fsys, path.Join(dir, id+".down.sql")); err == nil {
			statement, err := read(id + ".down.sql")
			if err != nil {
				return err
			}
			down = exec(statement)
		}
		Register(id, exec(up), down)
	}
	return nil
}

// LoadEmbedded registers the SQL migrations shipped with the binary.
func LoadEmbedded() error {
	return LoadSQLMigrations(sqlFiles, "sql")
}
