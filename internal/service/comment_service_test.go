package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/pkg/apperr"
)

func TestAddComment(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	post := f.post(t, alice, "hello", time.Now(), nil)

	comment, err := f.commentSvc.Add(ctx, post.ID, bob.ID, "hi alice")
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, bob.ID, comment.AuthorID)
}

func TestAddCommentBlankTextFailsValidation(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	post := f.post(t, alice, "hello", time.Now(), nil)

	for _, text := range []string{"", "   "} {
		_, err := f.commentSvc.Add(ctx, post.ID, alice.ID, text)
		ve, ok := apperr.AsValidation(err)
		require.True(t, ok, "want validation error for %q", text)
		assert.Equal(t, "text", ve.Field)
	}

	var cnt int64
	require.NoError(t, f.db.Model(&model.Comment{}).Count(&cnt).Error)
	assert.Equal(t, int64(0), cnt)
}

func TestAddCommentUnknownPost(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	_, err := f.commentSvc.Add(ctx, 999, alice.ID, "hello?")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
