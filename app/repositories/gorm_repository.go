package repositories

import (
	"context"
	"errors"
	"fmt"

	"blogapi/app/models"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// postgres unique_violation
const pqUniqueViolation = "23505"

func translateGormError(err error) error {
	if gorm.IsRecordNotFoundError(err) {
		return ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code == pqUniqueViolation
	}
	return false
}

// GormPostRepository implements PostRepository on a relational database
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	post.ID = 0
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("could not create post: %w", err)
	}
	return nil
}

func (r *GormPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	var post models.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &post, nil
}

func (r *GormPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	posts := []*models.Post{}
	if err := r.db.Order("id asc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}
	return posts, nil
}

func (r *GormPostRepository) Update(ctx context.Context, post *models.Post) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	var existing models.Post
	if err := r.db.Where("id = ?", post.ID).First(&existing).Error; err != nil {
		return translateGormError(err)
	}
	err := r.db.Model(&existing).Updates(map[string]interface{}{
		"title":   post.Title,
		"content": post.Content,
	}).Error
	if err != nil {
		return fmt.Errorf("could not update post: %w", err)
	}
	return nil
}

// Delete removes the post and its comments in one transaction. The explicit
// comment delete covers sqlite, where no foreign key is declared.
func (r *GormPostRepository) Delete(ctx context.Context, id int) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var existing models.Post
	if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
		tx.Rollback()
		return translateGormError(err)
	}
	if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete comments: %w", err)
	}
	if err := tx.Where("id = ?", id).Delete(&models.Post{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete post: %w", err)
	}
	return tx.Commit().Error
}

// GormCommentRepository implements CommentRepository on a relational database
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	comment.ID = 0
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("could not create comment: %w", err)
	}
	return nil
}

func (r *GormCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	var comment models.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &comment, nil
}

func (r *GormCommentRepository) List(ctx context.Context) ([]*models.Comment, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	comments := []*models.Comment{}
	if err := r.db.Order("id asc").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}
	return comments, nil
}

func (r *GormCommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	comments := []*models.Comment{}
	if err := r.db.Where("post_id = ?", postID).Order("id asc").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}
	return comments, nil
}

// GormUserRepository implements UserRepository on a relational database
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	var existing models.User
	err := r.db.Where("username = ?", user.Username).First(&existing).Error
	if err == nil {
		return ErrDuplicate
	}
	if !gorm.IsRecordNotFoundError(err) {
		return err
	}
	return r.insert(user)
}

// insert writes the row. The unique index on username still decides
// between concurrent registrations that both passed the lookup in Create.
func (r *GormUserRepository) insert(user *models.User) error {
	user.ID = 0
	if err := r.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *GormUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}

func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &user, nil
}
