package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ValueTestSuite struct {
	suite.Suite
}

func (suite *ValueTestSuite) TestNone() {
	v := None[int]()

	suite.Nil(v.indirect)
	suite.True(v.IsNone())
	suite.False(v.IsSome())
}

func (suite *ValueTestSuite) TestZeroValueIsNone() {
	var v Value[string]

	suite.True(v.IsNone())
}

func (suite *ValueTestSuite) TestSome() {
	v := Some(0)

	suite.NotNil(v.indirect)
	suite.True(v.IsSome())
	suite.Equal(0, v.Unwrap())
}

func (suite *ValueTestSuite) TestSomePointer() {
	underlying := 12345
	v := Some(&underlying)

	suite.True(v.IsSome())
	suite.Equal(12345, *v.Unwrap())
}

func (suite *ValueTestSuite) TestSomeNilPointer() {
	var underlying *int

	suite.True(Some(underlying).IsNone())
}

func (suite *ValueTestSuite) TestSomeNilMap() {
	var underlying map[string]interface{}

	suite.True(Some(underlying).IsNone())
}

func (suite *ValueTestSuite) TestUnwrapNone() {
	suite.PanicsWithValue(ErrIsNone, func() {
		None[int]().Unwrap()
	})
}

func (suite *ValueTestSuite) TestUnwrapOr() {
	suite.Equal(555, None[int]().UnwrapOr(555))
	suite.Equal(12345, Some(12345).UnwrapOr(555))
}

func (suite *ValueTestSuite) TestGet() {
	value, ok := None[string]().Get()

	suite.False(ok)
	suite.Equal("", value)

	value, ok = Some("hello").Get()

	suite.True(ok)
	suite.Equal("hello", value)
}

func (suite *ValueTestSuite) TestMarshalJSON() {
	data, err := json.Marshal(None[int]())

	suite.NoError(err)
	suite.Equal("null", string(data))

	data, err = json.Marshal(Some(12345))

	suite.NoError(err)
	suite.Equal("12345", string(data))
}

func (suite *ValueTestSuite) TestUnmarshalJSON() {
	type config struct {
		UID Value[int64]
	}

	state := config{}

	suite.NoError(json.Unmarshal([]byte(`{"UID":12345}`), &state))
	suite.EqualValues(12345, state.UID.Unwrap())

	state = config{}

	suite.NoError(json.Unmarshal([]byte(`{"UID":null}`), &state))
	suite.True(state.UID.IsNone())

	state = config{}

	suite.Error(json.Unmarshal([]byte(`{"UID":[]}`), &state))
	suite.True(state.UID.IsNone())
}

func TestValue(t *testing.T) {
	suite.Run(t, &ValueTestSuite{})
}
