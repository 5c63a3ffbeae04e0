package controllers

import (
	"net/http"

	"blogapi/app/models"
	"blogapi/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Index lists comments across all posts.
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	comments, err := cc.commentService.ListComments(r.Context())
	if err != nil {
		sendServiceError(w, r, err, "Comment not found")
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create adds a top-level comment to the post named in the body.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CommentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	comment, err := cc.commentService.CreateComment(r.Context(), &in)
	if err != nil {
		sendServiceError(w, r, err, postNotFound)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// ByPost lists the comments of the post in the URL.
func (cc *CommentController) ByPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, postNotFound)
	if !ok {
		return
	}
	comments, err := cc.commentService.ListPostComments(r.Context(), postID)
	if err != nil {
		sendServiceError(w, r, err, postNotFound)
		return
	}
	sendJSON(w, http.StatusOK, comments)
}

// Reply adds a comment to the post in the URL, optionally under a parent
// comment. A post reference in the body is ignored.
func (cc *CommentController) Reply(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, postNotFound)
	if !ok {
		return
	}
	var in models.ReplyInput
	if !decodeJSON(w, r, &in) {
		return
	}
	comment, err := cc.commentService.CreateReply(r.Context(), postID, &in)
	if err != nil {
		sendServiceError(w, r, err, postNotFound)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}
