package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postDate = time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)

func newTestPost(t *testing.T, opts ...PostOption) *Post {
	t.Helper()
	p, err := NewPost("t3_abc", "Title", "Body text", postDate, "https://example.com/p/abc", opts...)
	require.NoError(t, err)
	return p
}

func TestNewPostOptionalFieldsDefaultAbsent(t *testing.T) {
	p := newTestPost(t)

	assert.Nil(t, p.Image)
	assert.Nil(t, p.Thumbnail)

	_, ok := p.ImageURL()
	assert.False(t, ok)
	_, ok = p.ThumbnailURL()
	assert.False(t, ok)
}

func TestNewPostWithOptionalFields(t *testing.T) {
	p := newTestPost(t, WithImage("https://img.example/a.png"), WithThumbnail("  "))

	img, ok := p.ImageURL()
	require.True(t, ok)
	assert.Equal(t, "https://img.example/a.png", img)
	assert.Nil(t, p.Thumbnail, "blank thumbnail stays absent")
}

func TestNewPostRequiresEveryField(t *testing.T) {
	cases := []struct {
		name  string
		build func() (*Post, error)
		field Field
	}{
		{"id", func() (*Post, error) { return NewPost("", "T", "D", postDate, "https://u") }, FieldID},
		{"title", func() (*Post, error) { return NewPost("1", "", "D", postDate, "https://u") }, FieldTitle},
		{"description", func() (*Post, error) { return NewPost("1", "T", " ", postDate, "https://u") }, FieldDescription},
		{"date", func() (*Post, error) { return NewPost("1", "T", "D", time.Time{}, "https://u") }, FieldDate},
		{"url", func() (*Post, error) { return NewPost("1", "T", "D", postDate, "") }, FieldURL},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tc.build()
			assert.Nil(t, p)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestSetThenGetDoesNotTouchOtherFields(t *testing.T) {
	p := newTestPost(t, WithImage("https://img.example/a.png"))
	before := *p

	require.NoError(t, p.Set(FieldTitle, "X"))

	got, err := p.Get(FieldTitle)
	require.NoError(t, err)
	assert.Equal(t, "X", got)

	assert.Equal(t, before.ID, p.ID)
	assert.Equal(t, before.Description, p.Description)
	assert.Equal(t, before.Date, p.Date)
	assert.Equal(t, before.URL, p.URL)
	assert.Equal(t, before.Image, p.Image)
	assert.Nil(t, p.Thumbnail)
}

func TestGetEveryField(t *testing.T) {
	p := newTestPost(t, WithThumbnail("https://img.example/t.png"))

	for _, f := range Fields() {
		_, err := p.Get(f)
		assert.NoError(t, err, "field %s", f)
	}

	v, err := p.Get(FieldDate)
	require.NoError(t, err)
	assert.Equal(t, postDate, v)

	v, err = p.Get(FieldImage)
	require.NoError(t, err)
	assert.Nil(t, v.(*string))

	v, err = p.Get(FieldThumbnail)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/t.png", *v.(*string))
}

func TestGetOptionalReturnsCopy(t *testing.T) {
	p := newTestPost(t, WithImage("https://img.example/a.png"), WithThumbnail("https://img.example/t.png"))

	for _, f := range []Field{FieldImage, FieldThumbnail} {
		v, err := p.Get(f)
		require.NoError(t, err)
		*v.(*string) = "   "
	}

	img, ok := p.ImageURL()
	assert.True(t, ok)
	assert.Equal(t, "https://img.example/a.png", img)
	thumb, ok := p.ThumbnailURL()
	assert.True(t, ok)
	assert.Equal(t, "https://img.example/t.png", thumb)
}

func TestSetOptionalFields(t *testing.T) {
	p := newTestPost(t)

	require.NoError(t, p.Set(FieldImage, "https://img.example/b.png"))
	img, ok := p.ImageURL()
	require.True(t, ok)
	assert.Equal(t, "https://img.example/b.png", img)

	thumb := "https://img.example/t.png"
	require.NoError(t, p.Set(FieldThumbnail, &thumb))
	thumb = "mutated"
	got, _ := p.ThumbnailURL()
	assert.Equal(t, "https://img.example/t.png", got, "Set copies the pointed-to value")

	require.NoError(t, p.Set(FieldImage, nil))
	assert.Nil(t, p.Image)

	require.NoError(t, p.Set(FieldThumbnail, ""))
	assert.Nil(t, p.Thumbnail)
}

func TestSetRejectsInvalidValues(t *testing.T) {
	p := newTestPost(t)

	err := p.Set(Field("score"), 10)
	assert.True(t, errors.Is(err, ErrUnknownField))

	_, err = p.Get(Field("score"))
	assert.True(t, errors.Is(err, ErrUnknownField))

	var verr *ValidationError
	require.ErrorAs(t, p.Set(FieldTitle, 42), &verr)
	assert.Equal(t, FieldTitle, verr.Field)

	require.ErrorAs(t, p.Set(FieldURL, ""), &verr)
	assert.Equal(t, FieldURL, verr.Field)

	require.ErrorAs(t, p.Set(FieldDate, "yesterday"), &verr)
	require.ErrorAs(t, p.Set(FieldDate, time.Time{}), &verr)
	require.ErrorAs(t, p.Set(FieldImage, 3.14), &verr)

	assert.Equal(t, "Title", p.Title)
	assert.Equal(t, postDate, p.Date)
}
