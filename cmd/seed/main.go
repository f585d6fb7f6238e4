package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"

	"minifacebook/internal/database"
	"minifacebook/internal/domain"
)

const (
	userCount     = 8
	postsPerUser  = 3
	seedPassword  = "secret123"
	defaultSeedDB = "minifacebook.db"
)

func main() {
	gofakeit.Seed(0)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = defaultSeedDB
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	defer database.Close(db)

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Children first so foreign keys never block the cleanup.
	log.Println("Cleaning old data...")
	for _, table := range []string{"post_likes", "comments", "post_videos", "post_images", "posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("cleanup %s failed: %v", table, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Creating users...")
	users := make([]domain.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		first, last := gofakeit.FirstName(), gofakeit.LastName()
		username := strings.ToLower(fmt.Sprintf("%s.%s%d", first, last, i))
		users = append(users, domain.User{
			Username:     username,
			Email:        username + "@example.com",
			PasswordHash: string(hash),
			FullName:     first + " " + last,
		})
	}
	if err := db.Create(&users).Error; err != nil {
		log.Fatal("create users failed:", err)
	}

	log.Println("Creating posts, comments and likes...")
	var posts, comments, likes int
	for _, author := range users {
		for j := 0; j < postsPerUser; j++ {
			p := domain.Post{UserID: author.ID, Content: gofakeit.Sentence(gofakeit.Number(5, 20))}
			if err := db.Create(&p).Error; err != nil {
				log.Fatal("create post failed:", err)
			}
			posts++

			for _, u := range users {
				if u.ID == author.ID {
					continue
				}
				if gofakeit.Bool() {
					if err := db.Create(&domain.PostLike{PostID: p.ID, UserID: u.ID}).Error; err != nil {
						log.Fatal("create like failed:", err)
					}
					p.LikesCount++
					likes++
				}
				if gofakeit.Number(0, 3) == 0 {
					c := domain.Comment{PostID: p.ID, UserID: u.ID, Content: gofakeit.Sentence(gofakeit.Number(3, 12))}
					if err := db.Create(&c).Error; err != nil {
						log.Fatal("create comment failed:", err)
					}
					comments++
				}
			}

			if err := db.Model(&p).UpdateColumn("likes_count", p.LikesCount).Error; err != nil {
				log.Fatal("update likes_count failed:", err)
			}
		}
	}

	log.Printf("Seeded %d users, %d posts, %d comments, %d likes", len(users), posts, comments, likes)
	log.Printf("Every seeded user logs in with password %q", seedPassword)
}
