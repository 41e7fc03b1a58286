package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/auth"
	"github.com/d60-Lab/yatube/pkg/cache"
	"github.com/d60-Lab/yatube/pkg/database"
)

type env struct {
	r   *gin.Engine
	db  *gorm.DB
	mr  *miniredis.Miniredis
	cfg *config.Config
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	pageCache := cache.NewRedis(client, "test:")

	cfg := &config.Config{
		JWT:   config.JWTConfig{Secret: "test-secret", TTL: time.Hour},
		Cache: config.CacheConfig{HomeTTL: 20 * time.Second, Prefix: "test:"},
	}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	h := handler.NewHandler(
		cfg,
		service.NewFeedService(postRepo, groupRepo, userRepo, followRepo),
		service.NewRelationshipService(followRepo, userRepo),
		service.NewPostService(postRepo, commentRepo),
		service.NewCommentService(postRepo, commentRepo),
		service.NewGroupService(groupRepo),
		service.NewAuthService(userRepo, cfg.JWT),
		pageCache,
	)

	r := gin.New()
	h.RegisterRoutes(r)
	return &env{r: r, db: db, mr: mr, cfg: cfg}
}

func (e *env) user(t *testing.T, username string) (*model.User, string) {
	t.Helper()
	u := &model.User{ID: uuid.New().String(), Username: username, Password: "x"}
	require.NoError(t, e.db.Create(u).Error)
	token, err := auth.GenerateToken(e.cfg.JWT.Secret, u.ID, u.Username, e.cfg.JWT.TTL)
	require.NoError(t, err)
	return u, token
}

func (e *env) seedPosts(t *testing.T, author *model.User, n int) {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 0; i < n; i++ {
		p := &model.Post{
			Text:      fmt.Sprintf("post %d", i),
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, e.db.Create(p).Error)
	}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var ev envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ev))
	return ev
}
