package controllers

import (
	"net/http"

	"blogapi/app/models"
	"blogapi/app/services"

	"github.com/gorilla/mux"
)

// BlogController handles HTTP requests for blogs
type BlogController struct {
	blogService *services.BlogService
}

// NewBlogController creates a new BlogController
func NewBlogController(blogService *services.BlogService) *BlogController {
	return &BlogController{blogService: blogService}
}

// Index handles listing all blogs
func (bc *BlogController) Index(w http.ResponseWriter, r *http.Request) {
	blogs, err := bc.blogService.ListBlogs(r.Context())
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, blogs)
}

// Show handles displaying a single blog
func (bc *BlogController) Show(w http.ResponseWriter, r *http.Request) {
	blog, err := bc.blogService.GetBlog(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusOK, blog)
}

// Create handles creating a new blog
func (bc *BlogController) Create(w http.ResponseWriter, r *http.Request) {
	in := decodeInput[models.BlogInput](r)
	blog, err := bc.blogService.CreateBlog(r.Context(), in)
	if err != nil {
		sendError(w, r, err)
		return
	}
	sendJSON(w, http.StatusCreated, blog)
}

// Update handles overwriting an existing blog
func (bc *BlogController) Update(w http.ResponseWriter, r *http.Request) {
	in := decodeInput[models.BlogInput](r)
	if err := bc.blogService.UpdateBlog(r.Context(), mux.Vars(r)["id"], in); err != nil {
		sendError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles deleting a blog
func (bc *BlogController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := bc.blogService.DeleteBlog(r.Context(), mux.Vars(r)["id"]); err != nil {
		sendError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
