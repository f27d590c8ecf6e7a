package seed

import (
	"fmt"
	"log"

	"github.com/donggunkwak/Brainwave/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the database with generated demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder with the given options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll removes all seeded data. Child tables go first so foreign keys
// stay satisfied on databases that enforce them.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Like{},
		&models.Comment{},
		&models.Post{},
		&models.Friendship{},
		&models.User{},
	} {
		err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}

// SeedSocialMesh creates numUsers accounts and a spread of friendships
// between them, roughly two accepted and one pending per user.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("failed to create user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	created := 0
	// The DB's unique index only covers the ordered pair, so track seeded
	// pairs here to keep reverse duplicates out.
	seen := make(map[[2]uint]bool)
	for i, user := range users {
		targets := s.factory.rng.Perm(len(users))
		accepted, pending := 0, 0
		for _, j := range targets {
			if j == i {
				continue
			}
			if accepted >= 2 && pending >= 1 {
				break
			}
			pair := [2]uint{user.ID, users[j].ID}
			if pair[0] > pair[1] {
				pair[0], pair[1] = pair[1], pair[0]
			}
			if seen[pair] {
				continue
			}
			status := models.FriendshipStatusAccepted
			if accepted >= 2 {
				status = models.FriendshipStatusPending
			}
			if err := s.factory.CreateFriendship(user, users[j], status); err != nil {
				continue
			}
			seen[pair] = true
			created++
			if status == models.FriendshipStatusAccepted {
				accepted++
			} else {
				pending++
			}
		}
	}
	log.Printf("Created %d friendships", created)

	return users, nil
}

// SeedEngagement creates numPosts posts by random users, each with a handful
// of comments and likes from the rest of the mesh.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to seed posts for")
	}

	posts := make([]*models.Post, 0, numPosts)
	comments, likes := 0, 0
	for i := 0; i < numPosts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return nil, fmt.Errorf("failed to create post %d: %w", i, err)
		}
		posts = append(posts, post)

		for c := s.factory.rng.Intn(4); c > 0; c-- {
			commenter := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return nil, fmt.Errorf("failed to create comment: %w", err)
			}
			comments++
		}

		for _, j := range s.factory.rng.Perm(len(users))[:s.factory.rng.Intn(len(users)/2+1)] {
			if err := s.factory.CreateLike(users[j], post); err != nil {
				return nil, fmt.Errorf("failed to create like: %w", err)
			}
			likes++
		}
	}
	log.Printf("Created %d posts, %d comments, %d likes", len(posts), comments, likes)

	return posts, nil
}
