package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/cache"
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

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

// Compares home-feed page-1 reads straight through the assembler against
// reads through the TTL page cache, the same split the Index handler makes.
func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	ctx := context.Background()

	N := 5000 // posts in the table
	READS := 2000
	if s := os.Getenv("N"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			N = v
		}
	}
	if s := os.Getenv("READS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			READS = v
		}
	}

	// seed one author and N posts
	author := model.User{ID: uuid.New().String(), Username: "bench-author", Password: "x"}
	mustDo(db.Where("username = ?", author.Username).FirstOrCreate(&author).Error)
	base := time.Now()
	posts := make([]model.Post, N)
	for i := range posts {
		posts[i] = model.Post{
			Text:      fmt.Sprintf("bench post %d", i),
			AuthorID:  author.ID,
			CreatedAt: base.Add(-time.Duration(i) * time.Second),
		}
	}
	mustDo(db.CreateInBatches(&posts, 500).Error)

	feedSvc := service.NewFeedService(
		repository.NewPostRepository(db),
		repository.NewGroupRepository(db),
		repository.NewUserRepository(db),
		repository.NewFollowRepository(db),
	)

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = cfg.Redis.Addr
	}
	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer client.Close()
	pageCache := cache.NewRedis(client, "feedbench:")
	_ = pageCache.Clear(ctx)

	// pass 1: assembler every time
	direct := make([]time.Duration, 0, READS)
	for i := 0; i < READS; i++ {
		st := time.Now()
		if _, err := feedSvc.HomeFeed(ctx, 1); err != nil {
			panic(err)
		}
		direct = append(direct, time.Since(st))
	}

	// pass 2: through the page cache, handler-style
	const key = "feed:home"
	cached := make([]time.Duration, 0, READS)
	hits := 0
	for i := 0; i < READS; i++ {
		st := time.Now()
		if _, err := pageCache.Get(ctx, key); err == nil {
			hits++
		} else {
			feed, err := feedSvc.HomeFeed(ctx, 1)
			if err != nil {
				panic(err)
			}
			body := must(json.Marshal(feed))
			_ = pageCache.Set(ctx, key, body, cfg.Cache.HomeTTL)
		}
		cached = append(cached, time.Since(st))
	}

	sum := func(vs []time.Duration) time.Duration {
		var t time.Duration
		for _, d := range vs {
			t += d
		}
		return t
	}
	fmt.Printf("N=%d READS=%d ttl=%v\n", N, READS, cfg.Cache.HomeTTL)
	fmt.Printf("direct: avg=%v p95=%v p99=%v\n", sum(direct)/time.Duration(len(direct)), pct(direct, 0.95), pct(direct, 0.99))
	fmt.Printf("cached: avg=%v p95=%v p99=%v hits=%d/%d\n", sum(cached)/time.Duration(len(cached)), pct(cached, 0.95), pct(cached, 0.99), hits, READS)
}
