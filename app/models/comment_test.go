package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestCommentInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   *CommentInput
		wantErr bool
		field   string
	}{
		{
			name:  "valid comment",
			input: &CommentInput{PostID: intPtr(1), Text: "Nice", Email: "a@b.c"},
		},
		{
			name:  "post alias",
			input: &CommentInput{Post: intPtr(3), Text: "Nice", Email: "a@b.c"},
		},
		{
			name:    "missing post",
			input:   &CommentInput{Text: "Nice", Email: "a@b.c"},
			wantErr: true,
			field:   "post_id",
		},
		{
			name:    "zero post",
			input:   &CommentInput{PostID: intPtr(0), Text: "Nice", Email: "a@b.c"},
			wantErr: true,
			field:   "post_id",
		},
		{
			name:    "missing text",
			input:   &CommentInput{PostID: intPtr(1), Email: "a@b.c"},
			wantErr: true,
			field:   "text",
		},
		{
			name:  "email format is not checked",
			input: &CommentInput{PostID: intPtr(1), Text: "Nice", Email: "not-an-email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, FieldErrors(err), tt.field)
		})
	}
}

func TestCommentInputResolvesAlias(t *testing.T) {
	input := &CommentInput{Post: intPtr(3), Text: "Nice", Email: "a@b.c"}
	require.NoError(t, input.Validate())

	comment := input.Comment()
	assert.Equal(t, 3, comment.PostID)
	assert.False(t, comment.IsReply())
}

func TestReplyInput(t *testing.T) {
	t.Run("binds route post", func(t *testing.T) {
		input := &ReplyInput{ParentComment: intPtr(5), Text: "Agreed", Email: "a@b.c"}
		require.NoError(t, input.Validate())

		comment := input.Comment(9)
		assert.Equal(t, 9, comment.PostID)
		require.True(t, comment.IsReply())
		assert.Equal(t, 5, *comment.ParentCommentID)
	})

	t.Run("no parent is a top-level comment", func(t *testing.T) {
		input := &ReplyInput{Text: "First", Email: "a@b.c"}
		require.NoError(t, input.Validate())
		assert.False(t, input.Comment(2).IsReply())
	})

	t.Run("invalid parent id", func(t *testing.T) {
		input := &ReplyInput{ParentCommentID: intPtr(-1), Text: "x", Email: "a@b.c"}
		err := input.Validate()
		assert.Error(t, err)
		assert.Contains(t, FieldErrors(err), "parent_comment_id")
	})
}

func TestCommentSetPost(t *testing.T) {
	comment := &Comment{ID: 1, Text: "Test Comment"}

	t.Run("set valid post", func(t *testing.T) {
		err := comment.SetPost(&Post{ID: 4})
		assert.NoError(t, err)
		assert.Equal(t, 4, comment.PostID)
	})

	t.Run("set nil post", func(t *testing.T) {
		assert.Error(t, comment.SetPost(nil))
	})
}

func TestCredentialsValidation(t *testing.T) {
	assert.NoError(t, (&Credentials{Username: "alice", Password: "correct-horse"}).Validate())

	err := (&Credentials{Username: "alice", Password: "short"}).Validate()
	assert.Error(t, err)
	assert.Contains(t, FieldErrors(err), "password")

	// 72 ASCII bytes is the bcrypt ceiling.
	assert.NoError(t, (&Credentials{Username: "alice", Password: strings.Repeat("a", 72)}).Validate())

	// 50 runes but 100 bytes.
	err = (&Credentials{Username: "alice", Password: strings.Repeat("é", 50)}).Validate()
	require.Error(t, err)
	assert.Equal(t, "must be at most 72 bytes", FieldErrors(err)["password"])
}
