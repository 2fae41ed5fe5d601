package ipinfolib_test

import (
	"context"
	"net/http"
	"time"

	"github.com/9seconds/ipinfo/ipinfolib"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)

	value, _ := args.Get(0).([]byte)

	return value, args.Bool(1), args.Error(2)
}

func (m *CacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *CacheMock) Delete(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)

	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) DeleteByPrefix(ctx context.Context, prefix string) (bool, error) {
	args := m.Called(ctx, prefix)

	return args.Bool(0), args.Error(1)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LookupError(target string, err error) {
	m.Called(target, err)
}

func (m *LoggerMock) CacheError(key string, err error) {
	m.Called(key, err)
}

func (m *LoggerMock) CacheHit(target string) {
	m.Called(target)
}

type MockedClientTestSuite struct {
	suite.Suite

	ctx    context.Context
	http   ipinfolib.HTTPClient
	logger *LoggerMock
}

func (suite *MockedClientTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedClientTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedClientTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.http = ipinfolib.NewHTTPClient(&http.Client{},
		"test-agent",
		time.Millisecond,
		100)
	suite.logger = &LoggerMock{}

	suite.logger.On("LookupError", mock.Anything, mock.Anything).Maybe()
	suite.logger.On("CacheError", mock.Anything, mock.Anything).Maybe()
	suite.logger.On("CacheHit", mock.Anything).Maybe()
}

func (suite *MockedClientTestSuite) TearDownTest() {
	httpmock.Reset()
}

func (suite *MockedClientTestSuite) NewClient(opts ipinfolib.Opts) *ipinfolib.Client {
	if opts.Token == "" {
		opts.Token = "token"
	}

	if opts.HTTPClient == nil {
		opts.HTTPClient = suite.http
	}

	if opts.Logger == nil {
		opts.Logger = suite.logger
	}

	client, err := ipinfolib.NewClient(opts)

	suite.Require().NoError(err)

	return client
}

// DeadlineResponder responds with body and remembers a deadline of the
// request context.
func (suite *MockedClientTestSuite) DeadlineResponder(deadline *time.Time, body string) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		value, ok := req.Context().Deadline()

		suite.True(ok)

		*deadline = value

		return httpmock.NewStringResponse(http.StatusOK, body), nil
	}
}
