package mock

import (
	"context"
	"sort"
	"sync"

	"blogapi/app/models"
	"blogapi/app/repositories"
)

// Store holds in-memory posts, comments and users shared by the three
// repositories, so that deleting a post also removes its comments.
type Store struct {
	mutex         sync.RWMutex
	posts         map[int]models.Post
	comments      map[int]models.Comment
	users         map[int]models.User
	nextPostID    int
	nextCommentID int
	nextUserID    int
}

type PostRepository struct{ s *Store }

type CommentRepository struct{ s *Store }

type UserRepository struct{ s *Store }

func NewStore() *Store {
	s := &Store{}
	s.Clear()
	return s
}

func (s *Store) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.posts = make(map[int]models.Post)
	s.comments = make(map[int]models.Comment)
	s.users = make(map[int]models.User)
	s.nextPostID, s.nextCommentID, s.nextUserID = 1, 1, 1
}

func (s *Store) Posts() *PostRepository       { return &PostRepository{s: s} }
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s: s} }
func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }

// CommentCount reports how many comments are stored.
func (s *Store) CommentCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.comments)
}

// PostRepository implementation
func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	post.ID = m.s.nextPostID
	m.s.nextPostID++
	m.s.posts[post.ID] = *post
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	post, exists := m.s.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &post, nil
}

func (m *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.s.posts))
	for _, post := range m.s.posts {
		post := post
		posts = append(posts, &post)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	if _, exists := m.s.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.s.posts[post.ID] = *post
	return nil
}

func (m *PostRepository) Delete(ctx context.Context, id int) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	if _, exists := m.s.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	for cid, c := range m.s.comments {
		if c.PostID == id {
			delete(m.s.comments, cid)
		}
	}
	delete(m.s.posts, id)
	return nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	comment.ID = m.s.nextCommentID
	m.s.nextCommentID++
	m.s.comments[comment.ID] = *comment
	return nil
}

func (m *CommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	comment, exists := m.s.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &comment, nil
}

func (m *CommentRepository) List(ctx context.Context) ([]*models.Comment, error) {
	return m.filter(func(models.Comment) bool { return true }), nil
}

func (m *CommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	return m.filter(func(c models.Comment) bool { return c.PostID == postID }), nil
}

func (m *CommentRepository) filter(keep func(models.Comment) bool) []*models.Comment {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	comments := []*models.Comment{}
	for _, comment := range m.s.comments {
		if keep(comment) {
			comment := comment
			comments = append(comments, &comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments
}

// UserRepository implementation
func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	m.s.mutex.Lock()
	defer m.s.mutex.Unlock()

	for _, u := range m.s.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	user.ID = m.s.nextUserID
	m.s.nextUserID++
	m.s.users[user.ID] = *user
	return nil
}

func (m *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	user, exists := m.s.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.s.mutex.RLock()
	defer m.s.mutex.RUnlock()

	for _, u := range m.s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}
