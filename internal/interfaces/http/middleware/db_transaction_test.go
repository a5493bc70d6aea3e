package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type txKey struct{}

type recordingTx struct {
	committed  int
	rolledBack int
}

func (r *recordingTx) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		r.rolledBack++
		return err
	}
	r.committed++
	return nil
}

type recordingUserCtx struct {
	users []string
	inTx  []bool
}

func (r *recordingUserCtx) SetUser(ctx context.Context, userID string) error {
	r.users = append(r.users, userID)
	_, ok := ctx.Value(txKey{}).(bool)
	r.inTx = append(r.inTx, ok)
	return nil
}

func newTxEngine(tx *recordingTx, userCtx *recordingUserCtx, status int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(withUserID(c.Request.Context(), "user-1"))
		c.Next()
	})
	r.Use(DBTransaction(tx, userCtx))
	r.GET("/x", func(c *gin.Context) {
		_, inTx := c.Request.Context().Value(txKey{}).(bool)
		if !inTx {
			c.Status(http.StatusTeapot)
			return
		}
		c.Status(status)
	})
	return r
}

func TestDBTransaction_CommitsOnSuccess(t *testing.T) {
	tx := &recordingTx{}
	userCtx := &recordingUserCtx{}
	r := newTxEngine(tx, userCtx, http.StatusOK)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, tx.committed)
	assert.Zero(t, tx.rolledBack)
	require.Equal(t, []string{"user-1"}, userCtx.users)
	assert.Equal(t, []bool{true}, userCtx.inTx)
}

func TestDBTransaction_RollsBackOnErrorStatus(t *testing.T) {
	tx := &recordingTx{}
	r := newTxEngine(tx, &recordingUserCtx{}, http.StatusNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, tx.committed)
	assert.Equal(t, 1, tx.rolledBack)
}
