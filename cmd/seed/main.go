package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

// Seeds demo data: USERS authors, GROUPS groups, POSTS posts spread over
// the last 30 days, and FOLLOWS random follow edges. All seeded accounts
// share the password "password".
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	ctx := context.Background()

	USERS := envInt("USERS", 50)
	GROUPS := envInt("GROUPS", 5)
	POSTS := envInt("POSTS", 500)
	FOLLOWS := envInt("FOLLOWS", 200)

	// one hash for everyone; per-user bcrypt would dominate the run
	hash := must(bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost))

	users := make([]model.User, USERS)
	for i := range users {
		users[i] = model.User{
			ID:       uuid.New().String(),
			Username: fmt.Sprintf("author%03d", i),
			Email:    fmt.Sprintf("author%03d@example.com", i),
			Password: string(hash),
		}
	}
	mustDo(db.CreateInBatches(&users, 100).Error)

	groups := make([]model.Group, GROUPS)
	for i := range groups {
		groups[i] = model.Group{
			Title:       fmt.Sprintf("Group %d", i),
			Slug:        fmt.Sprintf("group-%d", i),
			Description: "seeded group",
		}
	}
	mustDo(db.Create(&groups).Error)

	base := time.Now()
	posts := make([]model.Post, POSTS)
	for i := range posts {
		p := model.Post{
			Text:      fmt.Sprintf("post %d from the seeder", i),
			AuthorID:  users[rand.Intn(USERS)].ID,
			CreatedAt: base.Add(-time.Duration(rand.Intn(30*24)) * time.Hour),
		}
		if rand.Intn(3) > 0 {
			p.GroupID = &groups[rand.Intn(GROUPS)].ID
		}
		posts[i] = p
	}
	mustDo(db.CreateInBatches(&posts, 200).Error)

	// go through the service so self-follows are skipped and duplicates
	// collapse, same as production traffic
	relSvc := service.NewRelationshipService(
		repository.NewFollowRepository(db),
		repository.NewUserRepository(db),
	)
	created := 0
	for i := 0; i < FOLLOWS; i++ {
		from := users[rand.Intn(USERS)].ID
		to := users[rand.Intn(USERS)].ID
		if err := relSvc.Follow(ctx, from, to); err == nil {
			created++
		}
	}

	fmt.Printf("seeded: users=%d groups=%d posts=%d follow_attempts=%d\n", USERS, GROUPS, POSTS, created)
}
