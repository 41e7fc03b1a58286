package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection, or each pooled conn gets its own :memory: database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{},
	))
	return db
}

type fixture struct {
	db         *gorm.DB
	feedSvc    FeedService
	relSvc     RelationshipService
	postSvc    PostService
	commentSvc CommentService
	groupSvc   GroupService
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	postRepo := repository.NewPostRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	return &fixture{
		db:         db,
		feedSvc:    NewFeedService(postRepo, groupRepo, userRepo, followRepo),
		relSvc:     NewRelationshipService(followRepo, userRepo),
		postSvc:    NewPostService(postRepo, commentRepo),
		commentSvc: NewCommentService(postRepo, commentRepo),
		groupSvc:   NewGroupService(groupRepo),
	}
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Username: username, Password: "x"}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) group(t *testing.T, slug string) *model.Group {
	t.Helper()
	g := &model.Group{Title: slug, Slug: slug}
	require.NoError(t, f.db.Create(g).Error)
	return g
}

func (f *fixture) post(t *testing.T, author *model.User, text string, at time.Time, group *model.Group) *model.Post {
	t.Helper()
	p := &model.Post{Text: text, AuthorID: author.ID, CreatedAt: at}
	if group != nil {
		p.GroupID = &group.ID
	}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

// posts spread one minute apart, newest last created.
func (f *fixture) posts(t *testing.T, author *model.User, n int, group *model.Group) {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		f.post(t, author, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute), group)
	}
}

var ctx = context.Background()
