package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/phrazzld/devlink-api/internal/platform/logger"
	"github.com/phrazzld/devlink-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerUserIDIsNotRepeated(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ann := f.register(t)

	log, buf := logger.NewTestLogger()
	ctx := logger.WithContext(context.Background(), log.With("user_id", ann.ID.Hex()))

	_, err := f.profileSvc.Create(ctx, profileInput(ann.ID, "ann"))
	require.NoError(t, err)
	_, err = f.postSvc.Create(ctx, validation.PostInput{User: ann.ID.Hex(), Text: "hello"})
	require.NoError(t, err)
	require.NoError(t, f.userSvc.DeleteAccount(ctx, ann.ID))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Equal(t, 1, strings.Count(line, `"user_id"`), line)
	}
}
