package service

import (
	"context"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/apperr"
)

// PostInput is the post form payload.
type PostInput struct {
	Text    string
	GroupID *uint
	Image   string
}

// PostDetail is the post page: the post, its comments and how many posts
// the author has in total.
type PostDetail struct {
	Post            *model.Post      `json:"post"`
	Comments        []*model.Comment `json:"comments"`
	AuthorPostCount int64            `json:"author_post_count"`
}

type PostService interface {
	Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error)
	Update(ctx context.Context, id uint, editorID string, in PostInput) (*model.Post, error)
	Get(ctx context.Context, id uint) (*PostDetail, error)
	Delete(ctx context.Context, id uint, editorID string) error
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) PostService {
	return &postService{postRepo: postRepo, commentRepo: commentRepo}
}

func (s *postService) Create(ctx context.Context, authorID string, in PostInput) (*model.Post, error) {
	if err := validateText("text", in.Text); err != nil {
		return nil, err
	}
	post := &model.Post{
		Text:     in.Text,
		AuthorID: authorID,
		GroupID:  in.GroupID,
		Image:    in.Image,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, id uint, editorID string, in PostInput) (*model.Post, error) {
	if err := validateText("text", in.Text); err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "post")
	}
	if post.AuthorID != editorID {
		return nil, apperr.ErrForbidden
	}
	post.Text = in.Text
	post.GroupID = in.GroupID
	if in.Image != "" {
		post.Image = in.Image
	}
	// drop stale preloads so Save does not upsert associations
	post.Author = nil
	post.Group = nil
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, id uint) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "post")
	}
	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments, AuthorPostCount: count}, nil
}

func (s *postService) Delete(ctx context.Context, id uint, editorID string) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return asNotFound(err, "post")
	}
	if post.AuthorID != editorID {
		return apperr.ErrForbidden
	}
	return s.postRepo.Delete(ctx, id)
}
