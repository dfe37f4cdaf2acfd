package postgres

import (
	"log"

	"github.com/IGIHOZO/egura-negotiation-service/internal/config"
	"github.com/IGIHOZO/egura-negotiation-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.NegotiationConfig) *gorm.DB {
	dsn := cfg.NegotiationDB.Dsn
	// TranslateError turns driver unique violations into
	// gorm.ErrDuplicatedKey, which the session repository relies on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.NegotiationRuleModel{},
		&models.NegotiationSessionModel{},
		&models.DiscountTokenModel{},
		&models.AnalyticsRecordModel{},
	)

	return db
}
