package playable

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pokerengine/pkg/playable/poker/action"
)

func TestSimpleLogMessage(t *testing.T) {
	before := time.Now()
	lm := SimpleLogMessage("", "test %d", 5)
	assert.Equal(t, "test 5", lm.Message)
	assert.Nil(t, lm.PlayerIDs)
	assert.False(t, lm.Time.Before(before))
	assert.False(t, time.Now().Before(lm.Time))
	assert.Nil(t, lm.Cards)
	assert.Len(t, lm.UUID, 36)
}

func TestSimpleLogMessage_withPlayerID(t *testing.T) {
	lm := SimpleLogMessage("alice", "{} bet ${%d}", 4)
	assert.Equal(t, "{} bet ${4}", lm.Message)
	assert.Equal(t, []string{"alice"}, lm.PlayerIDs)
	assert.Equal(t, "Alice bet ${4}", lm.Format(map[string]string{"alice": "Alice"}))
	assert.Equal(t, "alice bet ${4}", lm.Format(nil))
}

func TestSimpleLogMessageSlice(t *testing.T) {
	lms := SimpleLogMessageSlice("", "test %d", 38)
	assert.Equal(t, 1, len(lms))
	assert.Equal(t, "test 38", lms[0].Message)
}

func TestCardsLogMessage(t *testing.T) {
	lm := CardsLogMessage("bob", []string{"As", "Kd"}, "{} shows")
	assert.Equal(t, []string{"As", "Kd"}, lm.Cards)
	assert.Equal(t, []string{"bob"}, lm.PlayerIDs)
}

func TestErrorResponse(t *testing.T) {
	res := ErrorResponse("ctx", errors.New("nope"))
	assert.Equal(t, &Response{Key: "error", Value: "nope", Context: "ctx"}, res)
	assert.Equal(t, "ctx", OK("ctx").Context)
}

func TestAdditionalData_GetIntSlice(t *testing.T) {
	a := assert.New(t)

	ad := AdditionalData{"ints": []float64{1, 2, 3}}
	val, ok := ad.GetIntSlice("ints")
	a.True(ok)
	a.Equal(val, []int{1, 2, 3})

	var data AdditionalData
	_ = json.Unmarshal([]byte(`{"ints":[1,2,3,4]}`), &data)
	val, ok = data.GetIntSlice("ints")
	a.True(ok)
	a.Equal(val, []int{1, 2, 3, 4})

	ad = AdditionalData{"ints": []string{"1", "2"}}
	val, ok = ad.GetIntSlice("ints")
	a.False(ok)
	a.Nil(val)
}

func TestPayloadIn_Request(t *testing.T) {
	a := assert.New(t)

	var p PayloadIn
	a.NoError(json.Unmarshal([]byte(`{
		"action": "raise",
		"additionalData": {"amount": 40}
	}`), &p))

	req, err := p.Request()
	a.NoError(err)
	a.Equal(action.Request{Action: action.Raise, Amount: 40}, req)

	a.NoError(json.Unmarshal([]byte(`{
		"action": "separate",
		"additionalData": {"subsets": {"Holdem": ["As", "Kd"], "Badugi": ["2c", "3d", "4h", "5s"]}}
	}`), &p))

	req, err = p.Request()
	a.NoError(err)
	a.Equal(map[string][]string{"Holdem": {"As", "Kd"}, "Badugi": {"2c", "3d", "4h", "5s"}}, req.Subsets)

	p = PayloadIn{Action: "declare", AdditionalData: AdditionalData{"declaration": "high_low"}}
	req, err = p.Request()
	a.NoError(err)
	a.Equal("high_low", req.Declaration)

	p = PayloadIn{Action: "dance"}
	_, err = p.Request()
	a.EqualError(err, "unknown action for identifier: dance")

	p = PayloadIn{Action: "separate", AdditionalData: AdditionalData{"subsets": map[string]interface{}{"Holdem": 5.0}}}
	_, err = p.Request()
	a.EqualError(err, "subset Holdem must be a list of cards")
}
