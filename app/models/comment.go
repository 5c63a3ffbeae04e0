package models

import "errors"

// Validate resolves the "post" alias and checks the payload.
func (in *CommentInput) Validate() error {
	if in.PostID == nil && in.Post != nil {
		in.PostID = in.Post
	}
	return validate.Struct(in)
}

// Comment builds a new, unsaved top-level comment. Validate must have
// succeeded first.
func (in *CommentInput) Comment() *Comment {
	return &Comment{PostID: *in.PostID, Text: in.Text, Email: in.Email}
}

// Validate resolves the "parent_comment" alias and checks the payload.
func (in *ReplyInput) Validate() error {
	if in.ParentCommentID == nil && in.ParentComment != nil {
		in.ParentCommentID = in.ParentComment
	}
	return validate.Struct(in)
}

// Comment builds a new, unsaved comment bound to postID.
func (in *ReplyInput) Comment(postID int) *Comment {
	c := &Comment{PostID: postID, Text: in.Text, Email: in.Email}
	if in.ParentCommentID != nil {
		parent := *in.ParentCommentID
		c.ParentCommentID = &parent
	}
	return c
}

// IsReply reports whether the comment is nested under another comment.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}

// SetPost sets the parent post and updates the PostID
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}
	c.PostID = post.ID
	return nil
}
