package services

import (
	"context"
	"fmt"

	"blogapi/app/models"
	"blogapi/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ListPosts returns every post in ID order.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// CreatePost validates the payload and stores a new post.
func (s *PostService) CreatePost(ctx context.Context, in *models.PostInput) (*models.Post, error) {
	if err := checkPayload(in.Validate()); err != nil {
		return nil, err
	}
	post := in.Post()
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// UpdatePost applies a partial update. Fields absent from the patch keep
// their stored values.
func (s *PostService) UpdatePost(ctx context.Context, id int, patch *models.PostPatch) (*models.Post, error) {
	if err := checkPayload(patch.Validate()); err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() || !patch.Apply(post) {
		return post, nil
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// ReplacePost overwrites both fields of an existing post.
func (s *PostService) ReplacePost(ctx context.Context, id int, in *models.PostInput) (*models.Post, error) {
	if err := checkPayload(in.Validate()); err != nil {
		return nil, err
	}
	post := in.Post()
	post.ID = id
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and its comments.
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	return s.postRepo.Delete(ctx, id)
}
