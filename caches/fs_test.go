package caches_test

import (
	"testing"
	"time"

	"github.com/9seconds/ipinfo/caches"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"
)

type FSTestSuite struct {
	CacheBaseTestSuite

	fs afero.Fs
}

func (suite *FSTestSuite) SetupTest() {
	suite.CacheBaseTestSuite.SetupTest()

	suite.fs = afero.NewMemMapFs()

	c, err := caches.NewFS(suite.fs, "/cache/ipinfo")

	suite.Require().NoError(err)

	suite.c = c
}

func (suite *FSTestSuite) TestDirectoryIsCreated() {
	ok, err := afero.DirExists(suite.fs, "/cache/ipinfo")

	suite.NoError(err)
	suite.True(ok)
}

func (suite *FSTestSuite) TestNoTemporaryFilesLeft() {
	suite.NoError(suite.c.Set(suite.ctx, suite.key("k"), []byte("value"), time.Minute))

	infos, err := afero.ReadDir(suite.fs, "/cache/ipinfo")

	suite.NoError(err)
	suite.Len(infos, 1)
}

func (suite *FSTestSuite) TestCorruptedFile() {
	suite.NoError(suite.c.Set(suite.ctx, "k", []byte("value"), time.Minute))
	suite.NoError(afero.WriteFile(suite.fs, "/cache/ipinfo/k", []byte("{"), 0o644))

	_, _, err := suite.c.Get(suite.ctx, "k")

	suite.Error(err)
}

func (suite *FSTestSuite) TestHandWrittenEntry() {
	content := `{"expires_at": 0, "data": "eyJpcCI6IjguOC44LjgifQ=="}`

	suite.NoError(afero.WriteFile(suite.fs, "/cache/ipinfo/k", []byte(content), 0o644))

	value, ok, err := suite.c.Get(suite.ctx, "k")

	suite.NoError(err)
	suite.True(ok)
	suite.Equal(`{"ip":"8.8.8.8"}`, string(value))
}

func (suite *FSTestSuite) TestSharedDirectory() {
	other, err := caches.NewFS(suite.fs, "/cache/ipinfo")

	suite.Require().NoError(err)
	suite.NoError(suite.c.Set(suite.ctx, suite.key("k"), []byte("value"), time.Minute))

	value, ok, err := other.Get(suite.ctx, suite.key("k"))

	suite.NoError(err)
	suite.True(ok)
	suite.Equal([]byte("value"), value)
}

func TestFS(t *testing.T) {
	suite.Run(t, &FSTestSuite{})
}
