package controllers

import (
	"net/http"

	"blogapi/app/models"
	"blogapi/app/services"
)

const postNotFound = "Post not found"

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		sendServiceError(w, r, err, postNotFound)
		return
	}
	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, postNotFound)
	if !ok {
		return
	}
	post, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		sendServiceError(w, r, err, postNotFound)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	post, err := pc.postService.CreatePost(r.Context(), &in)
	if err != nil {
		sendServiceError(w, r, err, postNotFound)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Update applies a partial update; only title and content are read from
// the body.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, postNotFound)
	if !ok {
		return
	}
	var patch models.PostPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	post, err := pc.postService.UpdatePost(r.Context(), id, &patch)
	if err != nil {
		sendServiceError(w, r, err, postNotFound)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Replace overwrites a post; both fields are required.
func (pc *PostController) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, postNotFound)
	if !ok {
		return
	}
	var in models.PostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	post, err := pc.postService.ReplacePost(r.Context(), id, &in)
	if err != nil {
		sendServiceError(w, r, err, postNotFound)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, postNotFound)
	if !ok {
		return
	}
	if err := pc.postService.DeletePost(r.Context(), id); err != nil {
		sendServiceError(w, r, err, postNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
