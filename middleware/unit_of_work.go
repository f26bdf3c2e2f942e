package middleware

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/stock-api/repository"
	"go.uber.org/zap"
)

const (
	repositoriesKey  = "repositories"
	afterCommitKey   = "afterCommit"
	afterRollbackKey = "afterRollback"
)

// UnitOfWork runs each request in its own transaction. Handlers reach the
// transaction through Repositories. The response is held back until the
// outcome is known: a status below 400 with no gin errors commits, anything
// else rolls back, and a commit failure replaces the response with a 500.
// Hooks registered with AfterCommit and AfterRollback run once the outcome is
// settled.
func UnitOfWork(store *repository.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uow, err := store.Begin(c.Request.Context())
		if err != nil {
			log.Error("Failed to begin unit of work", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to start database transaction",
				},
			})
			return
		}

		original := c.Writer
		buffered := &bufferedWriter{ResponseWriter: original, status: http.StatusOK}
		c.Writer = buffered
		c.Set(repositoriesKey, uow.Repositories())

		defer func() {
			if r := recover(); r != nil {
				if rbErr := uow.Rollback(); rbErr != nil {
					log.Error("Failed to roll back unit of work", zap.Error(rbErr))
				}
				c.Writer = original
				runHooks(c, afterRollbackKey)
				panic(r)
			}
		}()

		c.Next()
		c.Writer = original

		if buffered.Status() >= http.StatusBadRequest || len(c.Errors) > 0 {
			if err := uow.Rollback(); err != nil {
				log.Error("Failed to roll back unit of work", zap.Error(err))
			}
			buffered.flushTo(original)
			runHooks(c, afterRollbackKey)
			return
		}

		if err := uow.Commit(); err != nil {
			log.Error("Failed to commit unit of work", zap.Error(err))
			original.Header().Del("Content-Length")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to commit changes",
				},
			})
			runHooks(c, afterRollbackKey)
			return
		}
		buffered.flushTo(original)
		runHooks(c, afterCommitKey)
	}
}

// AfterCommit registers fn to run after the request's unit of work commits.
// It is skipped when the work is rolled back.
func AfterCommit(c *gin.Context, fn func(ctx context.Context)) {
	addHook(c, afterCommitKey, fn)
}

// AfterRollback registers fn to run when the request's unit of work is
// rolled back or fails to commit.
func AfterRollback(c *gin.Context, fn func(ctx context.Context)) {
	addHook(c, afterRollbackKey, fn)
}

func addHook(c *gin.Context, key string, fn func(ctx context.Context)) {
	var hooks []func(context.Context)
	if existing, ok := c.Get(key); ok {
		hooks = existing.([]func(context.Context))
	}
	c.Set(key, append(hooks, fn))
}

func runHooks(c *gin.Context, key string) {
	existing, ok := c.Get(key)
	if !ok {
		return
	}
	ctx := context.WithoutCancel(c.Request.Context())
	for _, fn := range existing.([]func(context.Context)) {
		fn(ctx)
	}
}

// Repositories returns the repositories bound to the request's unit of work.
// It panics when the UnitOfWork middleware is not installed on the route.
func Repositories(c *gin.Context) *repository.Repositories {
	repos, ok := c.Get(repositoriesKey)
	if !ok {
		panic("middleware: UnitOfWork is not installed on this route")
	}
	return repos.(*repository.Repositories)
}

// bufferedWriter holds the status and body until the unit of work completes.
// Headers go straight to the wrapped writer's header map.
type bufferedWriter struct {
	gin.ResponseWriter
	status  int
	written bool
	body    bytes.Buffer
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 && !w.written {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() {
	w.written = true
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	w.written = true
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.written = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	if !w.written {
		return -1
	}
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return w.written
}

// Flush is a no-op until the unit of work completes
func (w *bufferedWriter) Flush() {}

func (w *bufferedWriter) flushTo(dst gin.ResponseWriter) {
	dst.WriteHeader(w.status)
	if w.body.Len() > 0 {
		_, _ = dst.Write(w.body.Bytes())
		return
	}
	if w.written {
		dst.WriteHeaderNow()
	}
}
