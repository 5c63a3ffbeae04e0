package services

import (
	"context"
	"errors"
	"fmt"

	"blogapi/app/models"
	"blogapi/app/repositories"
)

// ErrParentOnOtherPost is the message for a reply whose parent comment
// belongs to a different post than the one in the URL.
const ErrParentOnOtherPost = "The parent comment does not belong to the specified post"

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// ListComments returns every comment across all posts.
func (s *CommentService) ListComments(ctx context.Context) ([]*models.Comment, error) {
	return s.commentRepo.List(ctx)
}

// ListPostComments retrieves all comments for a post. It filters rather
// than looks up, so an unknown post yields an empty list.
func (s *CommentService) ListPostComments(ctx context.Context, postID int) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

// CreateComment stores a top-level comment on the post named in the payload.
// A post that does not exist is a payload error, not a missing resource.
func (s *CommentService) CreateComment(ctx context.Context, in *models.CommentInput) (*models.Comment, error) {
	if err := checkPayload(in.Validate()); err != nil {
		return nil, err
	}
	comment := in.Comment()

	post, err := s.postRepo.GetByID(ctx, comment.PostID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, invalidField("post_id", fmt.Sprintf("post %d does not exist", comment.PostID))
	}
	if err != nil {
		return nil, err
	}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// CreateReply stores a comment on postID, optionally nested under the parent
// named in the payload. The post always comes from postID; the parent must
// belong to that same post.
func (s *CommentService) CreateReply(ctx context.Context, postID int, in *models.ReplyInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := checkPayload(in.Validate()); err != nil {
		return nil, err
	}
	comment := in.Comment(postID)

	if comment.IsReply() {
		parent, err := s.commentRepo.GetByID(ctx, *comment.ParentCommentID)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, invalidField("parent_comment_id", fmt.Sprintf("comment %d does not exist", *comment.ParentCommentID))
		}
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, &ValidationError{
				Message: ErrParentOnOtherPost,
				Fields:  map[string]string{"parent_comment_id": ErrParentOnOtherPost},
			}
		}
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}
