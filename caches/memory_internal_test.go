package caches

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MemoryIndexTestSuite struct {
	suite.Suite

	ctx    context.Context
	memory *Memory
}

func (suite *MemoryIndexTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.memory = NewMemory(10)
}

func (suite *MemoryIndexTestSuite) TearDownTest() {
	suite.memory.Close()
}

func (suite *MemoryIndexTestSuite) TestIndexIsBoundedByCapacity() {
	for i := 0; i < 5000; i++ {
		err := suite.memory.Set(suite.ctx, "k"+strconv.Itoa(i), []byte("v"), time.Hour)
		if err != nil {
			suite.True(errors.Is(err, ErrRejected))
		}
	}

	suite.LessOrEqual(indexSize(suite.memory), 10)

	suite.memory.mutex.Lock()
	keys := make([]string, 0, len(suite.memory.index))

	for key := range suite.memory.index {
		keys = append(keys, key)
	}

	suite.memory.mutex.Unlock()

	for _, key := range keys {
		_, ok, err := suite.memory.Get(suite.ctx, key)

		suite.NoError(err)
		suite.True(ok, key)
	}
}

func (suite *MemoryIndexTestSuite) TestOverwriteKeepsSingleEntry() {
	for i := 0; i < 100; i++ {
		suite.NoError(suite.memory.Set(suite.ctx, "key", []byte(strconv.Itoa(i)), time.Hour))
	}

	suite.Equal(1, indexSize(suite.memory))

	value, ok, err := suite.memory.Get(suite.ctx, "key")

	suite.NoError(err)
	suite.True(ok)
	suite.Equal("99", string(value))
}

func (suite *MemoryIndexTestSuite) TestDeleteDropsIndexEntry() {
	suite.NoError(suite.memory.Set(suite.ctx, "key", []byte("v"), time.Hour))

	removed, err := suite.memory.Delete(suite.ctx, "key")

	suite.NoError(err)
	suite.True(removed)
	suite.Equal(0, indexSize(suite.memory))
}

func indexSize(m *Memory) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return len(m.index)
}

func TestMemoryIndex(t *testing.T) {
	suite.Run(t, &MemoryIndexTestSuite{})
}
