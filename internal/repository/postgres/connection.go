package postgres

import (
	"github.com/devmatch/backend/internal/domain"
	"github.com/devmatch/backend/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Needed so duplicate-key violations come back as
		// gorm.ErrDuplicatedKey instead of driver-specific errors.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.Technology{},
		&domain.Like{},
		&domain.Match{},
		&domain.Message{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:       NewUserRepository(db),
		Session:    NewSessionRepository(db),
		Technology: NewTechnologyRepository(db),
		Like:       NewLikeRepository(db),
		Match:      NewMatchRepository(db),
		Message:    NewMessageRepository(db),
	}
}
