package routes

import (
	"net/http"

	"blogapi/app/controllers"
	"blogapi/app/middleware"
	"blogapi/app/repositories"
	"blogapi/app/services"
	"blogapi/app/validation"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Dependencies are the collaborators the router is built from.
type Dependencies struct {
	Blogs  repositories.BlogRepository
	Posts  repositories.PostRepository
	Auth   *middleware.Authenticator
	Logger zerolog.Logger

	// TestingRoutes registers DELETE /testing/all-data.
	TestingRoutes bool
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Dependencies) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID(deps.Logger))
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.ContentTypeJSON)

	// mux serves these without running the router middleware
	router.NotFoundHandler = fallback(deps.Logger, http.StatusNotFound)
	router.MethodNotAllowedHandler = fallback(deps.Logger, http.StatusMethodNotAllowed)

	v := validation.New(deps.Blogs)
	blogController := controllers.NewBlogController(services.NewBlogService(deps.Blogs, v))
	postController := controllers.NewPostController(services.NewPostService(deps.Posts, v))
	protected := deps.Auth.RequireBasicAuth

	// Blogs endpoints
	blogs := router.PathPrefix("/blogs").Subrouter()
	blogs.HandleFunc("", blogController.Index).Methods("GET")
	blogs.HandleFunc("/{id}", blogController.Show).Methods("GET")
	blogs.Handle("", protected(http.HandlerFunc(blogController.Create))).Methods("POST")
	blogs.Handle("/{id}", protected(http.HandlerFunc(blogController.Update))).Methods("PUT")
	blogs.Handle("/{id}", protected(http.HandlerFunc(blogController.Delete))).Methods("DELETE")

	// Posts endpoints
	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("/{id}", postController.Show).Methods("GET")
	posts.Handle("", protected(http.HandlerFunc(postController.Create))).Methods("POST")
	posts.Handle("/{id}", protected(http.HandlerFunc(postController.Update))).Methods("PUT")
	posts.Handle("/{id}", protected(http.HandlerFunc(postController.Delete))).Methods("DELETE")

	if deps.TestingRoutes {
		testingController := controllers.NewTestingController(services.NewDataService(deps.Blogs, deps.Posts))
		router.HandleFunc("/testing/all-data", testingController.DeleteAllData).Methods("DELETE")
	}

	return router
}

func fallback(logger zerolog.Logger, status int) http.Handler {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
	return middleware.RequestID(logger)(middleware.Logger(h))
}
