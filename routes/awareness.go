package routes

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hafilati/hafilati-be/app"
	"github.com/hafilati/hafilati-be/controllers"
	"github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/middleware"
	"github.com/hafilati/hafilati-be/model"
	"github.com/hafilati/hafilati-be/services"
	"github.com/hafilati/hafilati-be/util"
)

const publicFeedPageSize = 20

type awarenessRoutes struct {
	db        db.AwarenessDatabase
	bucket    *services.StorageBucket
	dashboard *controllers.DashboardController
}

func AddAwarenessRoutes(group *gin.RouterGroup, database db.Database, authClient *auth.Client,
	bucket *services.StorageBucket, dashboard *controllers.DashboardController) {
	routes := awarenessRoutes{db: database, bucket: bucket, dashboard: dashboard}

	public := group.Group("/public/awareness")
	public.GET("", util.HandlerWrapper(routes.getPublishedFeed, &util.HandlerOpts{}))
	public.POST("/:id/view", util.HandlerWrapper(routes.recordView, &util.HandlerOpts{}))

	posts := group.Group("/awareness", middleware.GenAuth(database, authClient, &middleware.AuthConfig{}))
	posts.GET("", util.HandlerWrapper(routes.getPosts, &util.HandlerOpts{}))
	posts.GET("/:id", util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))

	adminOnly := middleware.RequireRole(model.RoleAdmin)
	posts.POST("", adminOnly, util.HandlerWrapper(routes.createPost, &util.HandlerOpts{}))
	posts.PUT("/:id", adminOnly, util.HandlerWrapper(routes.updatePost, &util.HandlerOpts{}))
	posts.POST("/:id/publish", adminOnly, util.HandlerWrapper(routes.publishPost, &util.HandlerOpts{}))
	posts.DELETE("/:id", adminOnly, util.HandlerWrapper(routes.deletePost, &util.HandlerOpts{}))
	posts.POST("/images", adminOnly, util.HandlerWrapper(routes.uploadImage, &util.HandlerOpts{}))
}

type writePostReq struct {
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	Category       model.Category `json:"category"`
	TargetAudience model.Audience `json:"targetAudience"`
	Priority       model.Priority `json:"priority"`
	ImageUrl       string         `json:"imageUrl"`
	ScheduledAt    *time.Time     `json:"scheduledAt"`
}

func (req *writePostReq) toWrite() *db.WriteAwarenessPost {
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	return &db.WriteAwarenessPost{
		Title:          strings.TrimSpace(req.Title),
		Content:        util.XSSSanitize(req.Content),
		Category:       req.Category,
		TargetAudience: req.TargetAudience,
		Priority:       priority,
		ImageUrl:       req.ImageUrl,
		ScheduledAt:    req.ScheduledAt,
	}
}

// resolveImageUrl uploads inline base64 image data and returns the blob
// URL. External URLs pass through untouched. Validation happens before
// any byte reaches the bucket.
func (ar *awarenessRoutes) resolveImageUrl(c *gin.Context, imageUrl string) (string, *util.HTTPError) {
	if imageUrl == "" || !strings.HasPrefix(imageUrl, "data:") {
		return imageUrl, nil
	}
	contentType, data, httpErr := util.DecodeImageDataURL(imageUrl)
	if httpErr != nil {
		return "", httpErr
	}
	blobName := "awareness/" + uuid.NewString()
	url, err := ar.bucket.Upload(c, blobName, contentType, bytes.NewReader(data))
	if err != nil {
		return "", &util.HTTPError{
			Status:  http.StatusBadGateway,
			Message: "image upload failed",
		}
	}
	return url, nil
}

func parseStateParam(raw string) (model.PostState, *util.HTTPError) {
	switch strings.ToUpper(raw) {
	case "":
		return "", nil
	case string(model.PostStateDraft):
		return model.PostStateDraft, nil
	case string(model.PostStateScheduled):
		return model.PostStateScheduled, nil
	case string(model.PostStatePublished):
		return model.PostStatePublished, nil
	}
	return "", &util.HTTPError{
		Status:  http.StatusBadRequest,
		Message: "state must be one of DRAFT, SCHEDULED, PUBLISHED",
	}
}

func filterFromQuery(c *gin.Context) *app.PostFilter {
	return &app.PostFilter{
		Search:   c.Query("q"),
		Category: model.Category(strings.ToUpper(c.Query("category"))),
		Audience: model.Audience(strings.ToUpper(c.Query("audience"))),
	}
}

func (ar *awarenessRoutes) getPosts(c *gin.Context) (interface{}, *util.HTTPError) {
	state, httpErr := parseStateParam(c.Query("state"))
	if httpErr != nil {
		return nil, httpErr
	}
	posts, err := ar.db.GetAwarenessPosts(c, &db.AwarenessListQuery{State: state})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return app.FilterPosts(posts, filterFromQuery(c)), nil
}

func (ar *awarenessRoutes) getPostById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := ar.db.GetAwarenessPostById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, &util.NotFoundHTTPErr
	}
	return post, nil
}

func (ar *awarenessRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req writePostReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	write := req.toWrite()
	if errs := app.ValidateWrite(write, time.Now()); errs != nil {
		return nil, util.BuildValidationHTTPErr(errs)
	}
	imageUrl, httpErr := ar.resolveImageUrl(c, write.ImageUrl)
	if httpErr != nil {
		return nil, httpErr
	}
	write.ImageUrl = imageUrl

	id, err := ar.db.CreateAwarenessPost(c, &db.CreateAwarenessPost{
		WriteAwarenessPost: write,
		AuthorId:           middleware.MustGetUser(c).Id,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	ar.dashboard.Invalidate(c)
	return gin.H{
		"id": id,
	}, nil
}

type updatePostReq struct {
	writePostReq
	// nil keeps the inherited last-write-wins behavior
	ExpectedUpdatedAt *time.Time `json:"expectedUpdatedAt"`
}

func (ar *awarenessRoutes) updatePost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req updatePostReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}

	existing, err := ar.db.GetAwarenessPostById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if existing == nil {
		return nil, &util.NotFoundHTTPErr
	}
	if existing.IsPublished && req.ScheduledAt != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusConflict,
			Message: "a published post cannot be scheduled",
		}
	}

	write := req.toWrite()
	if errs := app.ValidateWrite(write, time.Now()); errs != nil {
		return nil, util.BuildValidationHTTPErr(errs)
	}
	imageUrl, httpErr := ar.resolveImageUrl(c, write.ImageUrl)
	if httpErr != nil {
		return nil, httpErr
	}
	write.ImageUrl = imageUrl

	if err := ar.db.UpdateAwarenessPost(c, id, &db.UpdateAwarenessPost{
		WriteAwarenessPost: write,
		ExpectedUpdatedAt:  req.ExpectedUpdatedAt,
	}); err != nil {
		if err == db.ErrStaleRecord {
			return nil, &util.HTTPError{
				Status:  http.StatusConflict,
				Message: "post was modified by another editor",
			}
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	ar.dashboard.Invalidate(c)

	// refetch rather than patching locally so the caller sees exactly
	// what the store now holds
	updated, err := ar.db.GetAwarenessPostById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return updated, nil
}

func (ar *awarenessRoutes) publishPost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	existing, err := ar.db.GetAwarenessPostById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if existing == nil {
		return nil, &util.NotFoundHTTPErr
	}
	if err := ar.db.PublishAwarenessPost(c, id, time.Now()); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	ar.dashboard.Invalidate(c)

	published, err := ar.db.GetAwarenessPostById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return published, nil
}

func (ar *awarenessRoutes) deletePost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := ar.db.DeleteAwarenessPost(c, id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	ar.dashboard.Invalidate(c)
	return nil, nil
}

func (ar *awarenessRoutes) recordView(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := ar.db.IncrementAwarenessPostViews(c, id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (ar *awarenessRoutes) getPublishedFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	cursor, err := app.CursorFromParams(c.Query("before"), c.Query("lastId"))
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		}
	}
	page, err := app.NextPostsPage(c, ar.db, model.PostStatePublished, cursor, publicFeedPageSize)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"posts":  app.FilterPosts(page.Posts, filterFromQuery(c)),
		"cursor": page.Cursor,
	}, nil
}

func (ar *awarenessRoutes) uploadImage(c *gin.Context) (interface{}, *util.HTTPError) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "missing image file",
		}
	}
	contentType := file.Header.Get("Content-Type")
	if httpErr := util.ValidateImage(contentType, file.Size); httpErr != nil {
		return nil, httpErr
	}
	src, err := file.Open()
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "unreadable image file",
		}
	}
	defer src.Close()

	url, err := ar.bucket.Upload(c, "awareness/"+uuid.NewString(), contentType, src)
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusBadGateway,
			Message: "image upload failed",
		}
	}
	return gin.H{
		"url": url,
	}, nil
}
