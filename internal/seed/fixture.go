package seed

import (
	"fmt"
	"os"

	"github.com/donggunkwak/Brainwave/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Fixture describes a deterministic data set loaded from a YAML file.
// Users are referenced by username throughout; posts are referenced by the
// zero-based order they appear in the file.
type Fixture struct {
	Users       []FixtureUser       `yaml:"users"`
	Posts       []FixturePost       `yaml:"posts"`
	Friendships []FixtureFriendship `yaml:"friendships"`
}

// FixtureUser is an account entry. Password defaults to DemoPassword.
type FixtureUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// FixturePost is a post with inline comments and likers.
type FixturePost struct {
	Author   string           `yaml:"author"`
	Content  string           `yaml:"content"`
	Comments []FixtureComment `yaml:"comments"`
	Likes    []string         `yaml:"likes"`
}

// FixtureComment is a comment entry inside a fixture post.
type FixtureComment struct {
	Author  string `yaml:"author"`
	Content string `yaml:"content"`
}

// FixtureFriendship is a friendship entry between two fixture users.
// Status defaults to accepted.
type FixtureFriendship struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Status string `yaml:"status"`
}

// ParseFixture decodes a fixture from YAML bytes.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}

// LoadFixture reads and decodes a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	return ParseFixture(data)
}

// ApplyFixture persists the fixture's users, posts, comments, likes and
// friendships in order. Unknown username references are an error.
func (s *Seeder) ApplyFixture(f *Fixture) error {
	byName := make(map[string]*models.User, len(f.Users))

	for _, fu := range f.Users {
		if fu.Username == "" {
			return fmt.Errorf("fixture user with empty username")
		}
		password := fu.Password
		if password == "" {
			password = DemoPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &models.User{Username: fu.Username, Password: string(hashed)}
		if err := s.db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create fixture user %q: %w", fu.Username, err)
		}
		byName[fu.Username] = user
	}

	lookup := func(name string) (*models.User, error) {
		user, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("fixture references unknown user %q", name)
		}
		return user, nil
	}

	for i, fp := range f.Posts {
		author, err := lookup(fp.Author)
		if err != nil {
			return err
		}
		post := &models.Post{Content: fp.Content, AuthorID: author.ID}
		if err := s.db.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create fixture post %d: %w", i, err)
		}

		for _, fc := range fp.Comments {
			commenter, err := lookup(fc.Author)
			if err != nil {
				return err
			}
			comment := &models.Comment{Content: fc.Content, AuthorID: commenter.ID, PostID: post.ID}
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("failed to create fixture comment on post %d: %w", i, err)
			}
		}

		for _, liker := range fp.Likes {
			user, err := lookup(liker)
			if err != nil {
				return err
			}
			like := &models.Like{UserID: user.ID, PostID: post.ID}
			if err := s.db.Create(like).Error; err != nil {
				return fmt.Errorf("failed to create fixture like on post %d: %w", i, err)
			}
		}
	}

	for _, ff := range f.Friendships {
		from, err := lookup(ff.From)
		if err != nil {
			return err
		}
		to, err := lookup(ff.To)
		if err != nil {
			return err
		}
		status := models.FriendshipStatus(ff.Status)
		if status == "" {
			status = models.FriendshipStatusAccepted
		}
		if status != models.FriendshipStatusPending && status != models.FriendshipStatusAccepted {
			return fmt.Errorf("fixture friendship %s -> %s has invalid status %q", ff.From, ff.To, ff.Status)
		}
		friendship := &models.Friendship{RequesterID: from.ID, AddresseeID: to.ID, Status: status}
		if err := s.db.Create(friendship).Error; err != nil {
			return fmt.Errorf("failed to create fixture friendship %s -> %s: %w", ff.From, ff.To, err)
		}
	}

	return nil
}
