package migration

import (
	"fmt"
	"log"

	"brewstock/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.InventoryItem{}); err != nil {
		log.Fatalf("Error migrating inventory item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CostHistory{}); err != nil {
		log.Fatalf("Error migrating cost history database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Sellable{}); err != nil {
		log.Fatalf("Error migrating sellable database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecipeVersion{}, &entities.RecipeLine{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Order{}, &entities.OrderLine{}); err != nil {
		log.Fatalf("Error migrating order database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
