package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafilati/hafilati-be/app"
	"github.com/hafilati/hafilati-be/controllers"
	db2 "github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/middleware"
	"github.com/hafilati/hafilati-be/model"
	"github.com/hafilati/hafilati-be/util"
)

// fakeAwarenessDB is an in-memory stand-in for the awareness store with
// the same state-filter semantics as the MySQL implementation.
type fakeAwarenessDB struct {
	db2.Database
	posts       map[int64]*model.AwarenessPost
	nextId      int64
	nextCreated time.Time
	createCalls int
	updateCalls int
}

func newFakeAwarenessDB() *fakeAwarenessDB {
	return &fakeAwarenessDB{
		posts:       map[int64]*model.AwarenessPost{},
		nextId:      1,
		nextCreated: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (f *fakeAwarenessDB) seed(post *model.AwarenessPost) *model.AwarenessPost {
	post.Id = f.nextId
	post.CreatedAt = f.nextCreated
	post.UpdatedAt = f.nextCreated
	f.nextId++
	f.nextCreated = f.nextCreated.Add(time.Minute)
	f.posts[post.Id] = post
	return post
}

func (f *fakeAwarenessDB) CreateAwarenessPost(ctx context.Context, req *db2.CreateAwarenessPost) (int64, error) {
	f.createCalls++
	post := f.seed(&model.AwarenessPost{
		Title:          req.Title,
		Content:        req.Content,
		Category:       req.Category,
		TargetAudience: req.TargetAudience,
		Priority:       req.Priority,
		ImageUrl:       req.ImageUrl,
		ScheduledAt:    req.ScheduledAt,
		AuthorId:       req.AuthorId,
	})
	return post.Id, nil
}

func (f *fakeAwarenessDB) GetAwarenessPostById(ctx context.Context, id int64) (*model.AwarenessPost, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (f *fakeAwarenessDB) GetAwarenessPosts(ctx context.Context, query *db2.AwarenessListQuery) ([]*model.AwarenessPost, error) {
	posts := []*model.AwarenessPost{}
	for _, post := range f.posts {
		if query.State != "" && app.StateOf(post) != query.State {
			continue
		}
		copied := *post
		posts = append(posts, &copied)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].Id > posts[j].Id
	})
	return posts, nil
}

func (f *fakeAwarenessDB) UpdateAwarenessPost(ctx context.Context, id int64, req *db2.UpdateAwarenessPost) error {
	post, ok := f.posts[id]
	if !ok {
		return nil
	}
	if req.ExpectedUpdatedAt != nil && !req.ExpectedUpdatedAt.Equal(post.UpdatedAt) {
		return db2.ErrStaleRecord
	}
	f.updateCalls++
	post.Title = req.Title
	post.Content = req.Content
	post.Category = req.Category
	post.TargetAudience = req.TargetAudience
	post.Priority = req.Priority
	post.ImageUrl = req.ImageUrl
	post.ScheduledAt = req.ScheduledAt
	post.UpdatedAt = post.UpdatedAt.Add(time.Second)
	return nil
}

func (f *fakeAwarenessDB) PublishAwarenessPost(ctx context.Context, id int64, at time.Time) error {
	if post, ok := f.posts[id]; ok {
		app.ApplyPublishNow(post, at)
	}
	return nil
}

func (f *fakeAwarenessDB) PublishDueAwarenessPosts(ctx context.Context, now time.Time) (int64, error) {
	var published int64
	for _, post := range f.posts {
		if !post.IsPublished && post.ScheduledAt != nil && !post.ScheduledAt.After(now) {
			app.ApplyPublishNow(post, now)
			published++
		}
	}
	return published, nil
}

func (f *fakeAwarenessDB) DeleteAwarenessPost(ctx context.Context, id int64) error {
	delete(f.posts, id)
	return nil
}

func (f *fakeAwarenessDB) IncrementAwarenessPostViews(ctx context.Context, id int64) error {
	if post, ok := f.posts[id]; ok {
		post.Views++
	}
	return nil
}

func (f *fakeAwarenessDB) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	return &model.DashboardStats{RefreshedAt: time.Now()}, nil
}

func newAwarenessTestRouter(t *testing.T, fake *fakeAwarenessDB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dashboard, err := controllers.NewDashboardController(context.Background(), fake)
	require.NoError(t, err)

	routes := awarenessRoutes{db: fake, dashboard: dashboard}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.USER_KEY, &model.User{Id: "admin-1", DisplayName: "Admin", Role: model.RoleAdmin})
	})
	r.GET("/awareness", util.HandlerWrapper(routes.getPosts, &util.HandlerOpts{}))
	r.GET("/awareness/:id", util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))
	r.POST("/awareness", util.HandlerWrapper(routes.createPost, &util.HandlerOpts{}))
	r.PUT("/awareness/:id", util.HandlerWrapper(routes.updatePost, &util.HandlerOpts{}))
	r.POST("/awareness/:id/publish", util.HandlerWrapper(routes.publishPost, &util.HandlerOpts{}))
	r.DELETE("/awareness/:id", util.HandlerWrapper(routes.deletePost, &util.HandlerOpts{}))
	r.GET("/public/awareness", util.HandlerWrapper(routes.getPublishedFeed, &util.HandlerOpts{}))
	r.POST("/public/awareness/:id/view", util.HandlerWrapper(routes.recordView, &util.HandlerOpts{}))
	return r
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
	Data    json.RawMessage   `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, &env
}

func listIds(t *testing.T, r *gin.Engine, path string) []int64 {
	t.Helper()
	w, env := doJSON(t, r, "GET", path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []*model.AwarenessPost
	require.NoError(t, json.Unmarshal(env.Data, &posts))
	ids := make([]int64, len(posts))
	for i, post := range posts {
		ids[i] = post.Id
	}
	return ids
}

func validPostBody() gin.H {
	return gin.H{
		"title":          "Van safety week",
		"content":        "<p>Buckle up</p>",
		"category":       "SAFETY",
		"targetAudience": "ALL",
		"priority":       "HIGH",
	}
}

func TestCreateScheduledTooSoonMakesNoStoreCall(t *testing.T) {
	fake := newFakeAwarenessDB()
	r := newAwarenessTestRouter(t, fake)

	body := validPostBody()
	body["scheduledAt"] = time.Now().Add(10 * time.Minute).Format(time.RFC3339)
	w, env := doJSON(t, r, "POST", "/awareness", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Fields["scheduledAt"], "at least 20 minutes")
	assert.Equal(t, 0, fake.createCalls)
}

func TestCreateScheduledPostAppearsOnlyInScheduledList(t *testing.T) {
	fake := newFakeAwarenessDB()
	r := newAwarenessTestRouter(t, fake)

	body := validPostBody()
	body["scheduledAt"] = time.Now().Add(30 * time.Minute).Format(time.RFC3339)
	w, _ := doJSON(t, r, "POST", "/awareness", body)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Len(t, listIds(t, r, "/awareness?state=SCHEDULED"), 1)
	assert.Empty(t, listIds(t, r, "/awareness?state=DRAFT"))
	assert.Empty(t, listIds(t, r, "/awareness?state=PUBLISHED"))
}

func TestPublishNowMovesPostBetweenLists(t *testing.T) {
	fake := newFakeAwarenessDB()
	r := newAwarenessTestRouter(t, fake)
	scheduledAt := time.Now().Add(time.Hour)
	post := fake.seed(&model.AwarenessPost{Title: "Gate change", ScheduledAt: &scheduledAt})
	invokedAt := time.Now()

	w, env := doJSON(t, r, "POST", fmt.Sprintf("/awareness/%v/publish", post.Id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var published model.AwarenessPost
	require.NoError(t, json.Unmarshal(env.Data, &published))
	assert.True(t, published.IsPublished)
	assert.Nil(t, published.ScheduledAt)
	require.NotNil(t, published.PublishedAt)
	assert.False(t, published.PublishedAt.Before(invokedAt.Truncate(time.Second)))

	assert.Empty(t, listIds(t, r, "/awareness?state=SCHEDULED"))
	assert.Equal(t, []int64{post.Id}, listIds(t, r, "/awareness?state=PUBLISHED"))
}

func TestDeleteRemovesOnlyTarget(t *testing.T) {
	fake := newFakeAwarenessDB()
	r := newAwarenessTestRouter(t, fake)
	first := fake.seed(&model.AwarenessPost{Title: "First draft"})
	second := fake.seed(&model.AwarenessPost{Title: "Second draft"})

	w, _ := doJSON(t, r, "DELETE", fmt.Sprintf("/awareness/%v", first.Id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []int64{second.Id}, listIds(t, r, "/awareness?state=DRAFT"))
}

func TestUpdateWithStaleExpectedUpdatedAtConflicts(t *testing.T) {
	fake := newFakeAwarenessDB()
	r := newAwarenessTestRouter(t, fake)
	post := fake.seed(&model.AwarenessPost{
		Title:          "Original",
		Content:        "<p>original</p>",
		Category:       model.CategoryGeneral,
		TargetAudience: model.AudienceAll,
		Priority:       model.PriorityLow,
	})

	body := validPostBody()
	body["expectedUpdatedAt"] = post.UpdatedAt.Add(-time.Hour).Format(time.RFC3339)
	w, env := doJSON(t, r, "PUT", fmt.Sprintf("/awareness/%v", post.Id), body)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, env.Message, "modified by another editor")
	assert.Equal(t, "Original", fake.posts[post.Id].Title)
}

func TestUpdateValidationFailureLeavesPostUntouched(t *testing.T) {
	fake := newFakeAwarenessDB()
	r := newAwarenessTestRouter(t, fake)
	post := fake.seed(&model.AwarenessPost{
		Title:          "Original",
		Content:        "<p>original</p>",
		Category:       model.CategoryGeneral,
		TargetAudience: model.AudienceAll,
		Priority:       model.PriorityLow,
	})

	body := validPostBody()
	body["title"] = "   "
	w, env := doJSON(t, r, "PUT", fmt.Sprintf("/awareness/%v", post.Id), body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Fields, "title")
	assert.Equal(t, 0, fake.updateCalls)
	assert.Equal(t, "Original", fake.posts[post.Id].Title)
}

func TestPublishedPostCannotBeRescheduled(t *testing.T) {
	fake := newFakeAwarenessDB()
	r := newAwarenessTestRouter(t, fake)
	publishedAt := time.Now()
	post := fake.seed(&model.AwarenessPost{
		Title:          "Done",
		Content:        "<p>done</p>",
		Category:       model.CategoryGeneral,
		TargetAudience: model.AudienceAll,
		Priority:       model.PriorityLow,
		IsPublished:    true,
		PublishedAt:    &publishedAt,
	})

	body := validPostBody()
	body["scheduledAt"] = time.Now().Add(time.Hour).Format(time.RFC3339)
	w, _ := doJSON(t, r, "PUT", fmt.Sprintf("/awareness/%v", post.Id), body)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListOrderIsCreationDescending(t *testing.T) {
	fake := newFakeAwarenessDB()
	r := newAwarenessTestRouter(t, fake)
	oldest := fake.seed(&model.AwarenessPost{Title: "oldest"})
	middle := fake.seed(&model.AwarenessPost{Title: "middle"})
	newest := fake.seed(&model.AwarenessPost{Title: "newest"})

	assert.Equal(t, []int64{newest.Id, middle.Id, oldest.Id}, listIds(t, r, "/awareness?state=DRAFT"))
}

func TestListSearchAndFacetFilters(t *testing.T) {
	fake := newFakeAwarenessDB()
	r := newAwarenessTestRouter(t, fake)
	match := fake.seed(&model.AwarenessPost{
		Title:          "Van Safety Week",
		Content:        "<p>Buckle up</p>",
		Category:       model.CategorySafety,
		TargetAudience: model.AudienceAll,
	})
	fake.seed(&model.AwarenessPost{
		Title:          "Flu season",
		Content:        "<p>Wash hands</p>",
		Category:       model.CategoryHealth,
		TargetAudience: model.AudienceGuardians,
	})

	ids := listIds(t, r, "/awareness?state=DRAFT&q=sAfEtY&category=SAFETY&audience=ALL")
	assert.Equal(t, []int64{match.Id}, ids)

	assert.Empty(t, listIds(t, r, "/awareness?state=DRAFT&q=safety&category=HEALTH"))
}

func TestRecordViewIncrementsCounter(t *testing.T) {
	fake := newFakeAwarenessDB()
	r := newAwarenessTestRouter(t, fake)
	publishedAt := time.Now()
	post := fake.seed(&model.AwarenessPost{Title: "News", IsPublished: true, PublishedAt: &publishedAt})

	w, _ := doJSON(t, r, "POST", fmt.Sprintf("/public/awareness/%v/view", post.Id), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), fake.posts[post.Id].Views)
}

func TestPublicFeedOnlyListsPublished(t *testing.T) {
	fake := newFakeAwarenessDB()
	r := newAwarenessTestRouter(t, fake)
	publishedAt := time.Now()
	published := fake.seed(&model.AwarenessPost{Title: "Live", IsPublished: true, PublishedAt: &publishedAt})
	fake.seed(&model.AwarenessPost{Title: "Draft"})

	w, env := doJSON(t, r, "GET", "/public/awareness", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Posts  []*model.AwarenessPost `json:"posts"`
		Cursor *app.PageCursor        `json:"cursor"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Posts, 1)
	assert.Equal(t, published.Id, page.Posts[0].Id)
	require.NotNil(t, page.Cursor)
	assert.Equal(t, published.Id, page.Cursor.LastId)
}

func TestGetUnknownPostIs404(t *testing.T) {
	fake := newFakeAwarenessDB()
	r := newAwarenessTestRouter(t, fake)

	w, env := doJSON(t, r, "GET", "/awareness/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}
