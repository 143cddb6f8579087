package db

import (
	"fmt"
	"log"

	"github.com/wasteeasy/api/config"
	"github.com/wasteeasy/api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	gormConfig := &gorm.Config{}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

// SeedRewardCatalog inserts the organization's default redeemable rewards.
func SeedRewardCatalog(db *gorm.DB) error {
	catalog := []models.Reward{
		{Name: "Reusable Bottle", Points: 30, Description: "A branded reusable water bottle.", CollectionInfo: "Pick up at the community center.", IsAvailable: true},
		{Name: "Compost Starter Kit", Points: 60, Description: "Everything you need to start composting at home.", CollectionInfo: "Pick up at the community center.", IsAvailable: true},
		{Name: "Tree Planting", Points: 100, Description: "We plant a tree in your name.", CollectionInfo: "Certificate mailed after planting.", IsAvailable: true},
	}

	for _, reward := range catalog {
		if err := db.Where("user_id = 0 AND name = ?", reward.Name).
			FirstOrCreate(&reward).Error; err != nil {
			return err
		}
	}

	return nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Blacklist{},
		&models.Report{},
		&models.Reward{},
		&models.Transaction{},
		&models.Notification{},
		&models.CollectedWaste{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := SeedRewardCatalog(db); err != nil {
		return fmt.Errorf("seeding reward catalog error: %v", err)
	}

	return nil
}
