package postgres

import (
	"log"

	"github.com/brightlms/commission-service/internal/config"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.CommissionConfig) *gorm.DB {
	dsn := cfg.CommissionDB.Dsn
	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the ledger relies on for idempotence.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.PaymentAttributionModel{},
		&models.UserAttributionModel{},
		&models.CreatorAccountModel{},
		&models.CMOAccountModel{},
		&models.PayoutRecordModel{},
		&models.PayoutConfirmationModel{},
		&models.DiscountCodeModel{},
		&models.RawPaymentModel{},
	)

	return db
}
