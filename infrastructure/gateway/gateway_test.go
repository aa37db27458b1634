package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blogspace-client/domain/blog"
	"blogspace-client/domain/events"
	"blogspace-client/infrastructure/config"
	"blogspace-client/infrastructure/keystore"
	"blogspace-client/pkg/auth"
	apperrors "blogspace-client/pkg/errors"
)

type harness struct {
	client  *Client
	tokens  *auth.Manager
	emitter *events.Emitter
}

func newHarness(t *testing.T, handler http.Handler) *harness {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	store := keystore.New(t.TempDir(), logger)
	emitter := events.NewEmitter()
	tokens := auth.NewManager(store, emitter, logger)

	cfg := &config.Config{
		BaseURL:        server.URL,
		UploadURL:      server.URL + "/uploads",
		RequestTimeout: 5 * time.Second,
	}
	return &harness{
		client:  NewClient(cfg, tokens, emitter, logger),
		tokens:  tokens,
		emitter: emitter,
	}
}

func TestLoginStoresSessionAndNormalizesUser(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "reader@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":      "ok",
			"accessToken":  "access-123",
			"refreshToken": "refresh-456",
			"user": map[string]interface{}{
				"id":    "u1",
				"name":  "Pat",
				"email": "reader@example.com",
				"role":  "user",
			},
		})
	}))

	user, err := h.client.Login(context.Background(), "reader@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, blog.RoleAuthor, user.Role)
	assert.Equal(t, "access-123", h.tokens.Token())
	assert.Equal(t, "refresh-456", h.tokens.RefreshCredential())
}

func TestLoginFailureUsesServerMessage(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))

	var emitted []events.Type
	h.emitter.Subscribe(events.AuthError, func(evt events.Type) {
		emitted = append(emitted, evt)
	})

	_, err := h.client.Login(context.Background(), "reader@example.com", "wrong")
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
	assert.Equal(t, "Invalid credentials", appErr.Message)
	assert.Equal(t, []events.Type{events.AuthError}, emitted)
	assert.Empty(t, h.tokens.Token())
}

func TestFailureFallsBackToStatusText(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := h.client.ListPosts(context.Background(), PostFilters{})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUnavailable, appErr.Type)
	assert.Contains(t, appErr.Message, "503")
	assert.True(t, apperrors.IsRetryable(err))
}

func TestBearerHeaderInjectedWhenTokenStored(t *testing.T) {
	var gotAuth string
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}})
	}))

	_, err := h.client.ListPosts(context.Background(), PostFilters{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	h.tokens.SetToken("stored-token")
	_, err = h.client.ListPosts(context.Background(), PostFilters{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer stored-token", gotAuth)
}

func TestListPostsFiltersAndNormalization(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "tech", q.Get("category"))
		assert.Equal(t, "true", q.Get("featured"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{
					"_id":    "p1",
					"title":  "First",
					"status": "published",
					"likes":  []string{"u1", "u2", "u3"},
					"author": map[string]interface{}{"_id": "a1", "name": "Sam"},
				},
				{
					"_id":    "p2",
					"title":  "Second",
					"author": "a2",
				},
			},
			"total": 12,
			"page":  2,
			"pages": 6,
		})
	}))

	page, err := h.client.ListPosts(context.Background(), PostFilters{
		Page: 2, Category: "tech", Featured: true,
	})
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)

	assert.Equal(t, 3, page.Posts[0].Likes)
	assert.Equal(t, blog.PostPublished, page.Posts[0].Status)
	assert.Equal(t, "Sam", page.Posts[0].Author.Name)
	assert.Equal(t, "a2", page.Posts[1].Author.ID)
	assert.Empty(t, page.Posts[1].Author.Name)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 6, page.Pages)
}

func TestCreatePostSendsMultipartForm(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Hello", r.FormValue("title"))
		assert.Equal(t, `["c1","c2"]`, r.FormValue("categories"))
		assert.Equal(t, "true", r.FormValue("isFeatured"))

		file, header, err := r.FormFile("featuredImage")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cover.png", header.Filename)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"post": map[string]interface{}{"_id": "p9", "title": "Hello"},
		})
	}))

	post, err := h.client.CreatePost(context.Background(), PostInput{
		Title:      "Hello",
		Content:    "body",
		Categories: []string{"c1", "c2"},
		IsFeatured: true,
		FeaturedImage: &FileUpload{
			Filename: "cover.png",
			Reader:   strings.NewReader("png-bytes"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "p9", post.ID)
}

func TestToggleLikeReturnsAuthoritativeCount(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/posts/p1/like", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"likes": 42, "liked": true})
	}))

	result, err := h.client.ToggleLike(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 42, result.Likes)
	assert.True(t, result.Liked)
}

func TestValidationErrorIsNotRetryable(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "title is required"})
	}))

	_, err := h.client.CreateCategory(context.Background(), CategoryInput{Name: ""})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.False(t, apperrors.IsRetryable(err))
}

func TestRefreshTokenWithoutCredentialFailsLocally(t *testing.T) {
	called := false
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := h.client.RefreshToken(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.False(t, called)
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	// Point the client at the closed listener.
	h.client.baseURL = server.URL

	_, err := h.client.ListPosts(context.Background(), PostFilters{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNetwork))
	assert.True(t, apperrors.IsRetryable(err))
}

func TestMediaURLResolution(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	assert.Equal(t, "", h.client.MediaURL(""))
	assert.Equal(t, "https://cdn.example.com/a.png", h.client.MediaURL("https://cdn.example.com/a.png"))
	assert.Equal(t, h.client.uploadURL+"/images/a.png", h.client.MediaURL("/images/a.png"))
	assert.Equal(t, h.client.uploadURL+"/images/a.png", h.client.MediaURL("images/a.png"))
}

func TestCreateCommentPostsToCommentsWithPostID(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/comments", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p1", body["postId"])
		assert.Equal(t, "nice read", body["content"])
		assert.Equal(t, "c9", body["parentId"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"comment": map[string]interface{}{"_id": "c10", "content": "nice read", "parent": "c9"},
		})
	}))

	comment, err := h.client.CreateComment(context.Background(), "p1", "nice read", "c9")
	require.NoError(t, err)
	assert.Equal(t, "c10", comment.ID)
	assert.Equal(t, "c9", comment.ParentID)
}

func TestCommentTreeDecodesRecursively(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/comments/post/p1", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("tree"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"comments": []map[string]interface{}{
				{
					"_id":     "c1",
					"content": "root",
					"status":  "approved",
					"likes":   []string{"u1"},
					"replies": []map[string]interface{}{
						{"_id": "c2", "content": "child", "parent": "c1"},
					},
				},
			},
		})
	}))

	comments, err := h.client.ListComments(context.Background(), "p1", CommentQuery{Tree: true})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, 1, comments[0].Likes)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "c1", comments[0].Replies[0].ParentID)
}
