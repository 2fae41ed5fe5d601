package ipinfolib_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/9seconds/ipinfo/ipinfolib"
	"github.com/stretchr/testify/suite"
)

type HTTPClientTestSuite struct {
	suite.Suite

	endpoint *httptest.Server
	c        ipinfolib.HTTPClient
}

func (suite *HTTPClientTestSuite) SetupSuite() {
	suite.endpoint = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-User-Agent", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
}

func (suite *HTTPClientTestSuite) TearDownSuite() {
	suite.endpoint.Close()
}

func (suite *HTTPClientTestSuite) SetupTest() {
	suite.c = ipinfolib.NewHTTPClient(suite.endpoint.Client(),
		"test",
		100*time.Millisecond,
		1)
}

func (suite *HTTPClientTestSuite) TestUserAgent() {
	req, _ := http.NewRequest(http.MethodGet, suite.endpoint.URL, nil)
	resp, err := suite.c.Do(req)

	suite.NoError(err)

	defer resp.Body.Close()

	suite.Equal("test", resp.Header.Get("X-User-Agent"))
}

func (suite *HTTPClientTestSuite) TestDefaultUserAgent() {
	client := ipinfolib.NewHTTPClient(suite.endpoint.Client(), "", 0, 0)
	req, _ := http.NewRequest(http.MethodGet, suite.endpoint.URL, nil)
	resp, err := client.Do(req)

	suite.NoError(err)

	defer resp.Body.Close()

	suite.Equal(ipinfolib.DefaultUserAgent, resp.Header.Get("X-User-Agent"))
}

func (suite *HTTPClientTestSuite) TestRateLimiter() {
	now := time.Now()
	wg := &sync.WaitGroup{}

	wg.Add(10)

	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()

			req, _ := http.NewRequest(http.MethodGet, suite.endpoint.URL, nil)
			resp, err := suite.c.Do(req)

			suite.NoError(err)

			if err == nil {
				resp.Body.Close()
			}
		}()
	}

	wg.Wait()

	suite.True(time.Since(now) > 700*time.Millisecond)
	suite.WithinDuration(now, time.Now(), 12*100*time.Millisecond)
}

func (suite *HTTPClientTestSuite) TestClosedContext() {
	ctx, cancel := context.WithCancel(context.Background())

	cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, suite.endpoint.URL, nil)
	_, err := suite.c.Do(req)

	suite.ErrorIs(err, context.Canceled)
}

func (suite *HTTPClientTestSuite) TestCannotDial() {
	req, _ := http.NewRequest(http.MethodGet, suite.endpoint.URL+"1", nil)
	_, err := suite.c.Do(req)

	suite.Error(err)
}

func TestHTTPClient(t *testing.T) {
	suite.Run(t, &HTTPClientTestSuite{})
}
