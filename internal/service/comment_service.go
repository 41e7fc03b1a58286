package service

import (
	"context"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

type CommentService interface {
	Add(ctx context.Context, postID uint, authorID, text string) (*model.Comment, error)
}

type commentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewCommentService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) CommentService {
	return &commentService{postRepo: postRepo, commentRepo: commentRepo}
}

// Add validates the text, checks the parent post exists and persists the
// comment. There is no moderation step.
func (s *commentService) Add(ctx context.Context, postID uint, authorID, text string) (*model.Comment, error) {
	if err := validateText("text", text); err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, asNotFound(err, "post")
	}
	comment := &model.Comment{PostID: postID, AuthorID: authorID, Text: text}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
