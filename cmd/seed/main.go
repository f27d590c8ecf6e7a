// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"github.com/donggunkwak/Brainwave/internal/config"
	"github.com/donggunkwak/Brainwave/internal/database"
	"github.com/donggunkwak/Brainwave/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plain passwords (fast, accounts cannot log in)")
	fixture := flag.String("fixture", "", "Seed from a YAML fixture file instead of generating data")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{SkipBcrypt: *skipBcrypt})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if *fixture != "" {
		f, err := seed.LoadFixture(*fixture)
		if err != nil {
			log.Fatalf("Failed to load fixture: %v", err)
		}
		if err := s.ApplyFixture(f); err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
		log.Printf("Fixture %s applied", *fixture)
		return
	}

	users, err := s.SeedSocialMesh(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if _, err := s.SeedEngagement(users, *numPosts); err != nil {
		log.Fatalf("Engagement seeding failed: %v", err)
	}

	log.Printf("Done. All generated users have the password %q", seed.DemoPassword)
}
