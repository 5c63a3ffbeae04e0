package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"blogapi/app/auth"
	"blogapi/app/controllers"
	"blogapi/app/middleware"
	"blogapi/app/repositories"
	"blogapi/app/services"

	"github.com/gorilla/mux"
)

// Route binds one named endpoint to its handler. Routes are protected by
// the authorization gate unless Public is set.
type Route struct {
	Name    string
	Methods []string
	Path    string
	Handler http.HandlerFunc
	Public  bool
}

// Controllers groups the handler sets the table dispatches to.
type Controllers struct {
	Posts    *controllers.PostController
	Comments *controllers.CommentController
	Auth     *controllers.AuthController
}

// NewControllers wires services and controllers over the given repositories.
// It returns the user service too since it authenticates protected routes.
func NewControllers(posts repositories.PostRepository, comments repositories.CommentRepository, users repositories.UserRepository, issuer *auth.Issuer, secureCookie bool) (Controllers, *services.UserService) {
	userService := services.NewUserService(users, issuer)
	return Controllers{
		Posts:    controllers.NewPostController(services.NewPostService(posts)),
		Comments: controllers.NewCommentController(services.NewCommentService(comments, posts)),
		Auth:     controllers.NewAuthController(userService, secureCookie),
	}, userService
}

// Table is the complete route table of the API, built once at startup.
type Table struct {
	routes []Route
	authn  middleware.Authenticator
}

const idPattern = "{id:[0-9]+}"

// NewTable builds the route table. Both URL surfaces dispatch to the same
// controllers so they share one validation path.
func NewTable(c Controllers, authn middleware.Authenticator) *Table {
	id := idPattern
	routes := []Route{
		{Name: "post-list", Methods: []string{"GET"}, Path: "/posts/", Handler: c.Posts.Index},
		{Name: "post-detail", Methods: []string{"GET"}, Path: "/posts/" + id + "/", Handler: c.Posts.Show},
		{Name: "post-create", Methods: []string{"POST"}, Path: "/posts/create/", Handler: c.Posts.Create},
		{Name: "post-update", Methods: []string{"PATCH", "PUT"}, Path: "/posts/" + id + "/update/", Handler: c.Posts.Update},
		{Name: "comment-list", Methods: []string{"GET"}, Path: "/comments/", Handler: c.Comments.Index},
		{Name: "comment-create", Methods: []string{"POST"}, Path: "/comments/create/", Handler: c.Comments.Create},
		{Name: "post-comments", Methods: []string{"GET"}, Path: "/posts/" + id + "/comments/", Handler: c.Comments.ByPost},
		{Name: "post-comment-reply", Methods: []string{"POST"}, Path: "/posts/" + id + "/comments/create/", Handler: c.Comments.Reply},

		// Resource-style router over posts.
		{Name: "article-list", Methods: []string{"GET"}, Path: "/articles/", Handler: c.Posts.Index},
		{Name: "article-create", Methods: []string{"POST"}, Path: "/articles/", Handler: c.Posts.Create},
		{Name: "article-detail", Methods: []string{"GET"}, Path: "/articles/" + id + "/", Handler: c.Posts.Show},
		{Name: "article-replace", Methods: []string{"PUT"}, Path: "/articles/" + id + "/", Handler: c.Posts.Replace},
		{Name: "article-update", Methods: []string{"PATCH"}, Path: "/articles/" + id + "/", Handler: c.Posts.Update},
		{Name: "article-delete", Methods: []string{"DELETE"}, Path: "/articles/" + id + "/", Handler: c.Posts.Delete},

		// Schema-first surface.
		{Name: "ninja-post-list", Methods: []string{"GET"}, Path: "/ninja/posts", Handler: c.Posts.Index},
		{Name: "ninja-post-detail", Methods: []string{"GET"}, Path: "/ninja/posts/" + id, Handler: c.Posts.Show},
		{Name: "ninja-post-create", Methods: []string{"POST"}, Path: "/ninja/posts", Handler: c.Posts.Create},
		{Name: "ninja-post-update", Methods: []string{"PUT", "PATCH"}, Path: "/ninja/posts/" + id, Handler: c.Posts.Update},
		{Name: "ninja-post-delete", Methods: []string{"DELETE"}, Path: "/ninja/posts/" + id, Handler: c.Posts.Delete},
		{Name: "ninja-comment-list", Methods: []string{"GET"}, Path: "/ninja/comments", Handler: c.Comments.Index},
		{Name: "ninja-comment-create", Methods: []string{"POST"}, Path: "/ninja/comments", Handler: c.Comments.Create},
		{Name: "ninja-post-comments", Methods: []string{"GET"}, Path: "/ninja/posts/" + id + "/comments", Handler: c.Comments.ByPost},
		{Name: "ninja-post-comment-reply", Methods: []string{"POST"}, Path: "/ninja/posts/" + id + "/comments", Handler: c.Comments.Reply},

		{Name: "auth-register", Methods: []string{"POST"}, Path: "/auth/register", Handler: c.Auth.Register, Public: true},
		{Name: "auth-login", Methods: []string{"POST"}, Path: "/auth/login", Handler: c.Auth.Login, Public: true},
		{Name: "auth-logout", Methods: []string{"POST"}, Path: "/auth/logout", Handler: c.Auth.Logout, Public: true},
		{Name: "healthz", Methods: []string{"GET"}, Path: "/healthz", Handler: healthz, Public: true},
	}

	root := controllers.NewRootController(listable(routes))
	routes = append([]Route{{Name: "api-root", Methods: []string{"GET"}, Path: "/", Handler: root.Index}}, routes...)

	return &Table{routes: routes, authn: authn}
}

// listable returns name -> path for the protected GET routes that take no
// path variables.
func listable(routes []Route) map[string]string {
	endpoints := make(map[string]string)
	for _, rt := range routes {
		if rt.Public || strings.Contains(rt.Path, "{") {
			continue
		}
		for _, m := range rt.Methods {
			if m == http.MethodGet {
				endpoints[rt.Name] = rt.Path
			}
		}
	}
	return endpoints
}

// Routes returns a copy of the table.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Lookup finds a route by name.
func (t *Table) Lookup(name string) (Route, bool) {
	for _, rt := range t.routes {
		if rt.Name == name {
			return rt, true
		}
	}
	return Route{}, false
}

// Router registers every route on a new mux router. Protected routes run
// behind RequireAuth; unmatched paths and methods answer in JSON.
func (t *Table) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.ContentTypeJSON)

	gate := middleware.RequireAuth(t.authn)
	for _, rt := range t.routes {
		var h http.Handler = rt.Handler
		if !rt.Public {
			h = gate(h)
		}
		router.Handle(rt.Path, h).Methods(rt.Methods...).Name(rt.Name)
	}

	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	return router
}

// Handler returns the router wrapped in the request logger and panic
// recovery.
func (t *Table) Handler() http.Handler {
	return middleware.Logger(middleware.Recoverer(t.Router()))
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
