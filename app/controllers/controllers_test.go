package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogapi/app/models"
	"blogapi/app/repositories"
	"blogapi/app/repositories/mock"
	"blogapi/app/services"
	"blogapi/app/validation"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router   *mux.Router
	blogRepo *mock.BlogRepository
	postRepo *mock.PostRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	blogRepo := mock.NewBlogRepository()
	postRepo := mock.NewPostRepository(blogRepo)
	v := validation.New(blogRepo)

	blogs := NewBlogController(services.NewBlogService(blogRepo, v))
	posts := NewPostController(services.NewPostService(postRepo, v))
	tc := NewTestingController(services.NewDataService(blogRepo, postRepo))

	// Register routes manually; auth is covered by the routes package
	router := mux.NewRouter()
	router.HandleFunc("/blogs", blogs.Index).Methods("GET")
	router.HandleFunc("/blogs", blogs.Create).Methods("POST")
	router.HandleFunc("/blogs/{id}", blogs.Show).Methods("GET")
	router.HandleFunc("/blogs/{id}", blogs.Update).Methods("PUT")
	router.HandleFunc("/blogs/{id}", blogs.Delete).Methods("DELETE")
	router.HandleFunc("/posts", posts.Index).Methods("GET")
	router.HandleFunc("/posts", posts.Create).Methods("POST")
	router.HandleFunc("/posts/{id}", posts.Show).Methods("GET")
	router.HandleFunc("/posts/{id}", posts.Update).Methods("PUT")
	router.HandleFunc("/posts/{id}", posts.Delete).Methods("DELETE")
	router.HandleFunc("/testing/all-data", tc.DeleteAllData).Methods("DELETE")

	return &testEnv{router: router, blogRepo: blogRepo, postRepo: postRepo}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createBlog(t *testing.T, name string) models.Blog {
	t.Helper()
	w := e.do(http.MethodPost, "/blogs", `{"name":"`+name+`","description":"New description 1","websiteUrl":"https://website1.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var blog models.Blog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &blog))
	return blog
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) []validation.FieldError {
	t.Helper()
	var body validation.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Errors
}

func TestBlogController(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("empty list", func(t *testing.T) {
		w := env.do(http.MethodGet, "/blogs", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	blog := env.createBlog(t, "New blog 1")

	t.Run("create returns the blog", func(t *testing.T) {
		assert.NotEmpty(t, blog.ID)
		assert.Equal(t, "New blog 1", blog.Name)
		assert.Equal(t, "https://website1.com", blog.WebsiteURL)
		assert.False(t, blog.IsMembership)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, blog.CreatedAt)
	})

	t.Run("show", func(t *testing.T) {
		w := env.do(http.MethodGet, "/blogs/"+blog.ID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var got models.Blog
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, blog, got)
	})

	t.Run("show missing", func(t *testing.T) {
		w := env.do(http.MethodGet, "/blogs/aaaaa1111111111111111111", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())

		w = env.do(http.MethodGet, "/blogs/not-an-id", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("create collects every invalid field", func(t *testing.T) {
		w := env.do(http.MethodPost, "/blogs", `{"name":"","description":"","websiteUrl":"ftp://x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"errorsMessages":[
			{"message":"Invalid name","field":"name"},
			{"message":"Invalid description","field":"description"},
			{"message":"Invalid websiteUrl","field":"websiteUrl"}
		]}`, w.Body.String())
	})

	t.Run("undecodable body", func(t *testing.T) {
		w := env.do(http.MethodPost, "/blogs", `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Len(t, decodeErrors(t, w), 3)
	})

	t.Run("update", func(t *testing.T) {
		w := env.do(http.MethodPut, "/blogs/"+blog.ID, `{"name":"New blog 2","description":"New description 2","websiteUrl":"https://website2.com"}`)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())

		got, err := env.blogRepo.GetByID(context.Background(), blog.ID)
		require.NoError(t, err)
		assert.Equal(t, "New blog 2", got.Name)
		assert.Equal(t, blog.CreatedAt, got.CreatedAt)
	})

	t.Run("update invalid", func(t *testing.T) {
		w := env.do(http.MethodPut, "/blogs/"+blog.ID, `{"name":"this name is far too long","description":"d","websiteUrl":"https://website2.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []validation.FieldError{validation.Invalid("name")}, decodeErrors(t, w))
	})

	t.Run("update missing", func(t *testing.T) {
		w := env.do(http.MethodPut, "/blogs/aaaaa1111111111111111111", `{"name":"n","description":"d","websiteUrl":"https://website2.com"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := env.do(http.MethodDelete, "/blogs/aaaaa1111111111111111111", "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = env.do(http.MethodDelete, "/blogs/"+blog.ID, "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = env.do(http.MethodGet, "/blogs", "")
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestPostController(t *testing.T) {
	env := setupTestEnv(t)
	blog := env.createBlog(t, "Blog one")

	var post models.Post
	t.Run("create", func(t *testing.T) {
		w := env.do(http.MethodPost, "/posts", `{"title":"Post title","shortDescription":"Short","content":"Body","blogId":"`+blog.ID+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.NotEmpty(t, post.ID)
		assert.Equal(t, blog.ID, post.BlogID)
		assert.Equal(t, "Blog one", post.BlogName)
	})

	t.Run("unknown blog", func(t *testing.T) {
		w := env.do(http.MethodPost, "/posts", `{"title":"Post title","shortDescription":"Short","content":"Body","blogId":"aaaaa1111111111111111111"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []validation.FieldError{validation.Invalid("blogId")}, decodeErrors(t, w))

		w = env.do(http.MethodGet, "/posts", "")
		var posts []models.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		assert.Equal(t, []models.Post{post}, posts)
	})

	t.Run("non-string fields", func(t *testing.T) {
		w := env.do(http.MethodPost, "/posts", `{"title":5,"shortDescription":"Short","content":null,"blogId":"`+blog.ID+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []validation.FieldError{
			validation.Invalid("title"),
			validation.Invalid("content"),
		}, decodeErrors(t, w))
	})

	t.Run("show", func(t *testing.T) {
		w := env.do(http.MethodGet, "/posts/"+post.ID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		var got models.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, post, got)

		w = env.do(http.MethodGet, "/posts/"+blog.ID, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		w := env.do(http.MethodPut, "/posts/"+post.ID, `{"title":"New title","shortDescription":"Short","content":"Body","blogId":"`+blog.ID+`"}`)
		assert.Equal(t, http.StatusNoContent, w.Code)

		got, err := env.postRepo.GetByID(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, "New title", got.Title)

		w = env.do(http.MethodPut, "/posts/aaaaa1111111111111111111", `{"title":"New title","shortDescription":"Short","content":"Body","blogId":"`+blog.ID+`"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := env.do(http.MethodDelete, "/posts/"+post.ID, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		w = env.do(http.MethodDelete, "/posts/"+post.ID, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTestingController(t *testing.T) {
	env := setupTestEnv(t)
	blog := env.createBlog(t, "Blog one")
	w := env.do(http.MethodPost, "/posts", `{"title":"t","shortDescription":"s","content":"c","blogId":"`+blog.ID+`"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodDelete, "/testing/all-data", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.JSONEq(t, `[]`, env.do(http.MethodGet, "/blogs", "").Body.String())
	assert.JSONEq(t, `[]`, env.do(http.MethodGet, "/posts", "").Body.String())
}

func TestSendError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "validation",
			err:            &validation.Error{Errors: []validation.FieldError{validation.Invalid("title")}},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"errorsMessages":[{"message":"Invalid title","field":"title"}]}`,
		},
		{
			name:           "not found",
			err:            repositories.ErrNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "blog removed during write",
			err:            repositories.ErrBlogNotFound,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"errorsMessages":[{"message":"Invalid blogId","field":"blogId"}]}`,
		},
		{
			name:           "store failure",
			err:            errors.New("connection reset"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			sendError(w, httptest.NewRequest(http.MethodGet, "/posts", nil), tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody == "" {
				assert.Empty(t, w.Body.String())
			} else {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestRepositoryFailure(t *testing.T) {
	env := setupTestEnv(t)
	env.blogRepo.Err = errors.New("disk full")

	w := env.do(http.MethodGet, "/blogs", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
