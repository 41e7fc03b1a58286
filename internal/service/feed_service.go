package service

import (
	"context"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

// PageSize is the fixed feed page size.
const PageSize = 10

// FeedPage is one page of a reverse-chronological feed.
type FeedPage struct {
	Posts      []*model.Post `json:"posts"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	TotalPosts int64         `json:"total_posts"`
}

// AuthorProfile is the profile view: the author, their feed page and how
// many posts they have in total.
type AuthorProfile struct {
	Author    *model.User `json:"author"`
	PostCount int64       `json:"post_count"`
	Feed      *FeedPage   `json:"feed"`
}

// FeedService assembles filtered, paginated post feeds. Pure reads; the
// home-feed page cache sits above it in the handler layer.
type FeedService interface {
	HomeFeed(ctx context.Context, page int) (*FeedPage, error)
	GroupFeed(ctx context.Context, slug string, page int) (*model.Group, *FeedPage, error)
	AuthorFeed(ctx context.Context, username string, page int) (*AuthorProfile, error)
	FollowedFeed(ctx context.Context, viewerID string, page int) (*FeedPage, error)
}

type feedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) FeedService {
	return &feedService{postRepo: postRepo, groupRepo: groupRepo, userRepo: userRepo, followRepo: followRepo}
}

func (s *feedService) HomeFeed(ctx context.Context, page int) (*FeedPage, error) {
	return s.assemble(ctx, repository.PostFilter{}, page)
}

func (s *feedService) GroupFeed(ctx context.Context, slug string, page int) (*model.Group, *FeedPage, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, asNotFound(err, "group "+slug)
	}
	feed, err := s.assemble(ctx, repository.PostFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, nil, err
	}
	return group, feed, nil
}

func (s *feedService) AuthorFeed(ctx context.Context, username string, page int) (*AuthorProfile, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, asNotFound(err, "user "+username)
	}
	feed, err := s.assemble(ctx, repository.PostFilter{AuthorID: author.ID}, page)
	if err != nil {
		return nil, err
	}
	return &AuthorProfile{Author: author, PostCount: feed.TotalPosts, Feed: feed}, nil
}

func (s *feedService) FollowedFeed(ctx context.Context, viewerID string, page int) (*FeedPage, error) {
	authorIDs, err := s.followRepo.ListAuthorIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(authorIDs) == 0 {
		// following nobody is not an error, just an empty feed
		return &FeedPage{Posts: []*model.Post{}, Page: 1, TotalPages: 0}, nil
	}
	return s.assemble(ctx, repository.PostFilter{AuthorIDs: authorIDs}, page)
}

// assemble runs the count + page query for a filter and clamps the page
// number into range: below 1 becomes 1, beyond the end becomes the last
// valid page.
func (s *feedService) assemble(ctx context.Context, f repository.PostFilter, page int) (*FeedPage, error) {
	total, err := s.postRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + PageSize - 1) / PageSize)

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	if total == 0 {
		return &FeedPage{Posts: []*model.Post{}, Page: 1, TotalPages: 0}, nil
	}

	posts, err := s.postRepo.List(ctx, f, (page-1)*PageSize, PageSize)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Posts: posts, Page: page, TotalPages: totalPages, TotalPosts: total}, nil
}
