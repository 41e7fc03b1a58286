package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/yatube/internal/model"
)

func setupBenchDB(b *testing.B) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		b.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		b.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.User{}, &model.Group{}, &model.Post{}, &model.Follow{}); err != nil {
		b.Fatalf("migrate: %v", err)
	}
	return db
}

func BenchmarkFollowWrite_Idempotent(b *testing.B) {
	db := setupBenchDB(b)
	followRepo := NewFollowRepository(db)
	ctx := context.Background()

	users := make([]model.User, 1000)
	for i := range users {
		users[i] = model.User{ID: fmt.Sprintf("u%04d", i), Username: fmt.Sprintf("u%04d", i), Password: "p"}
	}
	if err := db.Create(&users).Error; err != nil {
		b.Fatalf("seed users: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := users[rand.Intn(len(users))].ID
		to := users[rand.Intn(len(users))].ID
		if from == to {
			continue
		}
		_ = followRepo.Create(ctx, from, to)
	}
}

func BenchmarkFeedQuery(b *testing.B) {
	db := setupBenchDB(b)
	postRepo := NewPostRepository(db)
	followRepo := NewFollowRepository(db)
	ctx := context.Background()

	// one reader following 50 authors with 100 posts each
	const authors = 50
	const postsPer = 100
	reader := model.User{ID: "reader", Username: "reader", Password: "p"}
	if err := db.Create(&reader).Error; err != nil {
		b.Fatalf("seed reader: %v", err)
	}
	base := time.Now()
	for i := 0; i < authors; i++ {
		uid := fmt.Sprintf("a%04d", i)
		if err := db.Create(&model.User{ID: uid, Username: uid, Password: "p"}).Error; err != nil {
			b.Fatalf("seed author: %v", err)
		}
		_ = followRepo.Create(ctx, reader.ID, uid)
		posts := make([]model.Post, postsPer)
		for j := range posts {
			posts[j] = model.Post{
				Text:      fmt.Sprintf("post %d/%d", i, j),
				AuthorID:  uid,
				CreatedAt: base.Add(-time.Duration(i*postsPer+j) * time.Second),
			}
		}
		if err := db.CreateInBatches(&posts, 100).Error; err != nil {
			b.Fatalf("seed posts: %v", err)
		}
	}
	followed, err := followRepo.ListAuthorIDs(ctx, reader.ID)
	if err != nil {
		b.Fatalf("list followed: %v", err)
	}

	b.ResetTimer()
	b.Run("HomePage1", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = postRepo.List(ctx, PostFilter{}, 0, 10)
		}
	})

	b.Run("FollowedPage1", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = postRepo.List(ctx, PostFilter{AuthorIDs: followed}, 0, 10)
		}
	})

	b.Run("Count", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = postRepo.Count(ctx, PostFilter{})
		}
	})
}
