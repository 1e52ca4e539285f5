package seed

import (
	"log"

	"Scribbler/models"

	"gorm.io/gorm"
)

var users = []models.User{
	{
		Username: "steven",
		Email:    "steven@example.com",
		Password: "password",
	},
	{
		Username: "martin",
		Email:    "luther@example.com",
		Password: "password",
	},
}

var posts = []models.Post{
	{
		Contents: "First scribble! Hello from the seeder.",
	},
	{
		Contents: "Short posts only around here. 280 characters is plenty.",
	},
}

// Load wipes and reseeds the database with two users who follow each other
// and one post apiece. Development only.
func Load(db *gorm.DB) {
	if err := db.Migrator().DropTable(
		&models.Like{},
		&models.Follow{},
		&models.Post{},
		&models.User{},
	); err != nil {
		log.Fatalf("cannot drop tables: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Follow{},
	); err != nil {
		log.Fatalf("cannot migrate tables: %v", err)
	}

	for i := range users {
		if err := db.Model(&models.User{}).Create(&users[i]).Error; err != nil {
			log.Fatalf("cannot seed users table: %v", err)
		}
		posts[i].OwnerID = users[i].ID

		if err := db.Model(&models.Post{}).Create(&posts[i]).Error; err != nil {
			log.Fatalf("cannot seed posts table: %v", err)
		}
	}

	if _, err := models.ToggleFollow(db, users[0].ID, users[1].ID); err != nil {
		log.Fatalf("cannot seed follows table: %v", err)
	}
	if _, err := models.ToggleFollow(db, users[1].ID, users[0].ID); err != nil {
		log.Fatalf("cannot seed follows table: %v", err)
	}
}
