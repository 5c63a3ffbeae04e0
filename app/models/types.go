package models

// Post represents a blog post.
type Post struct {
	ID      int    `json:"id" gorm:"primary_key"`
	Title   string `json:"title" gorm:"size:255;not null"`
	Content string `json:"content" gorm:"type:text;not null"`
}

// Comment represents a comment on a blog post. ParentCommentID is set only
// for threaded replies.
type Comment struct {
	ID              int    `json:"id" gorm:"primary_key"`
	PostID          int    `json:"post_id" gorm:"not null;index"`
	Text            string `json:"text" gorm:"type:text;not null"`
	Email           string `json:"email" gorm:"size:255;not null"`
	ParentCommentID *int   `json:"parent_comment_id" gorm:"index"`
}

// User is an account allowed to call the API.
type User struct {
	ID           int    `json:"id" gorm:"primary_key"`
	Username     string `json:"username" gorm:"size:150;not null;unique_index"`
	PasswordHash string `json:"-" gorm:"not null"`
}

// PostInput is the payload for creating or fully replacing a post.
type PostInput struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// PostPatch carries the optional fields of a partial post update. A nil
// field leaves the stored value untouched.
type PostPatch struct {
	Title   *string `json:"title" validate:"omitnil,min=1,max=255"`
	Content *string `json:"content" validate:"omitnil,min=1"`
}

// CommentInput is the payload for creating a comment without a parent.
// "post" is accepted as an alias of "post_id".
type CommentInput struct {
	PostID *int   `json:"post_id" validate:"required,gt=0"`
	Post   *int   `json:"post" validate:"-"`
	Text   string `json:"text" validate:"required"`
	Email  string `json:"email" validate:"required,max=255"`
}

// ReplyInput is the payload for creating a comment under a post taken from
// the URL. "parent_comment" is accepted as an alias of "parent_comment_id".
// Any post reference in the body is ignored.
type ReplyInput struct {
	ParentCommentID *int   `json:"parent_comment_id" validate:"omitnil,gt=0"`
	ParentComment   *int   `json:"parent_comment" validate:"-"`
	Text            string `json:"text" validate:"required"`
	Email           string `json:"email" validate:"required,max=255"`
}

// Credentials is the payload for register and login.
type Credentials struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}
