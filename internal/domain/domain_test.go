package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	t.Parallel()

	valid := NewID().Hex()
	id, err := ParseID(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, id.Hex())

	for _, bad := range []string{"", "123", strings.ToUpper(valid), valid + "0", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, "input %q", bad)
	}
}

func TestAvatarURLIsDeterministic(t *testing.T) {
	t.Parallel()

	a := AvatarURL("ann@x.com")
	b := AvatarURL("  ANN@X.com ")

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "https://www.gravatar.com/avatar/"))
	assert.Contains(t, a, "?s=200&r=pg&d=mm")
	assert.NotEqual(t, a, AvatarURL("bob@x.com"))
}

func TestNewUser(t *testing.T) {
	t.Parallel()

	u := NewUser("Ann Lee", "ann@x.com", "hash")
	assert.False(t, u.ID.IsZero())
	assert.Equal(t, AvatarURL("ann@x.com"), u.Avatar)
	assert.Equal(t, "hash", u.HashedPassword)
	assert.False(t, u.Date.IsZero())
}

func TestPostLikes(t *testing.T) {
	t.Parallel()

	author, alice, bob := NewID(), NewID(), NewID()
	p := NewPost(author, "hello", "", "")

	require.NoError(t, p.Like(alice))
	require.NoError(t, p.Like(bob))
	assert.Equal(t, []Like{{User: bob}, {User: alice}}, p.Likes, "most recent like first")

	assert.ErrorIs(t, p.Like(alice), ErrPostAlreadyLiked)
	assert.Len(t, p.Likes, 2)

	require.NoError(t, p.Unlike(alice))
	assert.False(t, p.LikedBy(alice))
	assert.ErrorIs(t, p.Unlike(alice), ErrPostNotLiked)
}

func TestPostComments(t *testing.T) {
	t.Parallel()

	author, commenter := NewID(), NewID()
	p := NewPost(author, "hello", "", "")

	first := p.AddComment(commenter, "one", "C", "")
	second := p.AddComment(author, "two", "A", "")
	require.Len(t, p.Comments, 2)
	assert.Equal(t, second.ID, p.Comments[0].ID)

	assert.ErrorIs(t, p.RemoveComment(first.ID, author), ErrForbiddenOperation)
	assert.Len(t, p.Comments, 2, "a forbidden removal leaves the post unchanged")

	assert.ErrorIs(t, p.RemoveComment(NewID(), commenter), ErrCommentNotFound)

	require.NoError(t, p.RemoveComment(first.ID, commenter))
	assert.Len(t, p.Comments, 1)
}

func TestProfileExperienceAndEducation(t *testing.T) {
	t.Parallel()

	p := NewProfile(NewID(), ProfileFields{Handle: "ann", Status: "dev", Skills: []string{"go"}}, nil, nil)
	assert.Empty(t, p.Experience)

	require.NoError(t, p.AddExperience(Experience{Title: "first"}))
	require.NoError(t, p.AddExperience(Experience{Title: "second"}))
	assert.Equal(t, "second", p.Experience[0].Title)
	assert.False(t, p.Experience[0].ID.IsZero())

	assert.ErrorIs(t, p.RemoveExperience(NewID()), ErrNoExperience)
	require.NoError(t, p.RemoveExperience(p.Experience[1].ID))
	assert.Len(t, p.Experience, 1)

	for i := 0; i < MaxEducation; i++ {
		require.NoError(t, p.AddEducation(Education{School: "s"}))
	}
	assert.ErrorIs(t, p.AddEducation(Education{School: "s"}), ErrEducationLimitReached)
	assert.ErrorIs(t, p.RemoveEducation(NewID()), ErrNoEducation)
}

func TestNewProfileAssignsEntryIDs(t *testing.T) {
	t.Parallel()

	existing := NewID()
	p := NewProfile(NewID(), ProfileFields{Handle: "ann"},
		[]Experience{{Title: "a"}, {ID: existing, Title: "b"}},
		[]Education{{School: "s"}})

	assert.False(t, p.Experience[0].ID.IsZero())
	assert.Equal(t, existing, p.Experience[1].ID)
	assert.False(t, p.Education[0].ID.IsZero())
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	p := NewProfile(NewID(), ProfileFields{Handle: "ann", Skills: []string{"go"}, Social: &Social{Twitter: "x.com/ann"}}, nil, nil)
	c := p.Clone()
	c.Skills[0] = "rust"
	c.Social.Twitter = "x.com/bob"
	require.NoError(t, c.AddExperience(Experience{Title: "t"}))

	assert.Equal(t, "go", p.Skills[0])
	assert.Equal(t, "x.com/ann", p.Social.Twitter)
	assert.Empty(t, p.Experience)

	post := NewPost(NewID(), "hi", "", "")
	pc := post.Clone()
	require.NoError(t, pc.Like(NewID()))
	assert.Empty(t, post.Likes)

	assert.Nil(t, (*Post)(nil).Clone())
}
