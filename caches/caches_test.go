package caches_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"
)

type Cache interface {
	Get(context.Context, string) ([]byte, bool, error)
	Set(context.Context, string, []byte, time.Duration) error
	Delete(context.Context, string) (bool, error)
	DeleteByPrefix(context.Context, string) (bool, error)
}

type CacheBaseTestSuite struct {
	suite.Suite

	ctx       context.Context
	ctxCancel context.CancelFunc
	namespace string
	c         Cache
}

func (suite *CacheBaseTestSuite) SetupTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	suite.ctx = ctx
	suite.ctxCancel = cancel
	suite.namespace = "test_" + time.Now().Format("150405.000000000") + "_"
}

func (suite *CacheBaseTestSuite) TearDownTest() {
	suite.ctxCancel()
}

func (suite *CacheBaseTestSuite) key(name string) string {
	return suite.namespace + name
}

func (suite *CacheBaseTestSuite) TestGetUnknown() {
	value, ok, err := suite.c.Get(suite.ctx, suite.key("unknown"))

	suite.NoError(err)
	suite.False(ok)
	suite.Nil(value)
}

func (suite *CacheBaseTestSuite) TestSetGet() {
	suite.NoError(suite.c.Set(suite.ctx, suite.key("k"), []byte("value"), time.Minute))

	value, ok, err := suite.c.Get(suite.ctx, suite.key("k"))

	suite.NoError(err)
	suite.True(ok)
	suite.Equal([]byte("value"), value)
}

func (suite *CacheBaseTestSuite) TestSetWithoutTTL() {
	suite.NoError(suite.c.Set(suite.ctx, suite.key("k"), []byte("value"), 0))

	value, ok, err := suite.c.Get(suite.ctx, suite.key("k"))

	suite.NoError(err)
	suite.True(ok)
	suite.Equal([]byte("value"), value)
}

func (suite *CacheBaseTestSuite) TestOverwrite() {
	suite.NoError(suite.c.Set(suite.ctx, suite.key("k"), []byte("old"), time.Minute))
	suite.NoError(suite.c.Set(suite.ctx, suite.key("k"), []byte("new"), time.Minute))

	value, ok, err := suite.c.Get(suite.ctx, suite.key("k"))

	suite.NoError(err)
	suite.True(ok)
	suite.Equal([]byte("new"), value)
}

func (suite *CacheBaseTestSuite) TestValueIsCopied() {
	original := []byte("value")

	suite.NoError(suite.c.Set(suite.ctx, suite.key("k"), original, time.Minute))

	original[0] = 'X'

	value, _, err := suite.c.Get(suite.ctx, suite.key("k"))

	suite.NoError(err)
	suite.Equal([]byte("value"), value)
}

func (suite *CacheBaseTestSuite) TestExpiration() {
	suite.NoError(suite.c.Set(suite.ctx, suite.key("k"), []byte("value"), 50*time.Millisecond))

	time.Sleep(200 * time.Millisecond)

	_, ok, err := suite.c.Get(suite.ctx, suite.key("k"))

	suite.NoError(err)
	suite.False(ok)
}

func (suite *CacheBaseTestSuite) TestDelete() {
	suite.NoError(suite.c.Set(suite.ctx, suite.key("k"), []byte("value"), time.Minute))

	removed, err := suite.c.Delete(suite.ctx, suite.key("k"))

	suite.NoError(err)
	suite.True(removed)

	_, ok, err := suite.c.Get(suite.ctx, suite.key("k"))

	suite.NoError(err)
	suite.False(ok)

	removed, err = suite.c.Delete(suite.ctx, suite.key("k"))

	suite.NoError(err)
	suite.False(removed)
}

func (suite *CacheBaseTestSuite) TestDeleteByPrefix() {
	suite.NoError(suite.c.Set(suite.ctx, suite.key("a_1"), []byte("1"), time.Minute))
	suite.NoError(suite.c.Set(suite.ctx, suite.key("a_2"), []byte("2"), time.Minute))
	suite.NoError(suite.c.Set(suite.ctx, suite.key("b_1"), []byte("3"), time.Minute))

	removed, err := suite.c.DeleteByPrefix(suite.ctx, suite.key("a_"))

	suite.NoError(err)
	suite.True(removed)

	for _, name := range []string{"a_1", "a_2"} {
		_, ok, err := suite.c.Get(suite.ctx, suite.key(name))

		suite.NoError(err)
		suite.False(ok, name)
	}

	value, ok, err := suite.c.Get(suite.ctx, suite.key("b_1"))

	suite.NoError(err)
	suite.True(ok)
	suite.Equal([]byte("3"), value)

	removed, err = suite.c.DeleteByPrefix(suite.ctx, suite.key("a_"))

	suite.NoError(err)
	suite.False(removed)
}

func (suite *CacheBaseTestSuite) TestDeleteByPrefixWithSpecialCharacters() {
	suite.NoError(suite.c.Set(suite.ctx, suite.key("a*/[1]"), []byte("1"), time.Minute))
	suite.NoError(suite.c.Set(suite.ctx, suite.key("ab"), []byte("2"), time.Minute))

	removed, err := suite.c.DeleteByPrefix(suite.ctx, suite.key("a*"))

	suite.NoError(err)
	suite.True(removed)

	_, ok, err := suite.c.Get(suite.ctx, suite.key("a*/[1]"))

	suite.NoError(err)
	suite.False(ok)

	_, ok, err = suite.c.Get(suite.ctx, suite.key("ab"))

	suite.NoError(err)
	suite.True(ok)
}
