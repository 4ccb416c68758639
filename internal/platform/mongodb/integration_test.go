//go:build integration

package mongodb_test

import (
	"testing"

	"github.com/phrazzld/devlink-api/internal/platform/mongodb"
	"github.com/phrazzld/devlink-api/internal/store/storetest"
	"github.com/phrazzld/devlink-api/internal/testdb"
)

func TestMongoStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Stores {
		db := testdb.Mongo(t)
		return storetest.Stores{
			Users:    mongodb.NewUserStore(db),
			Profiles: mongodb.NewProfileStore(db),
			Posts:    mongodb.NewPostStore(db),
		}
	})
}
