package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackData_Answer(t *testing.T) {
	data := buildAnswerCallback(42, 3)
	assert.Equal(t, "answer:42:3", data)
	assert.LessOrEqual(t, len(buildAnswerCallback(^uint64(0), 3)), 64, "telegram limits callback data to 64 bytes")

	cd := decodeCallback(data)
	assert.Equal(t, actionAnswer, cd.Action)
	assert.Equal(t, data, cd.Raw)

	version, idx, ok := cd.answer()
	require.True(t, ok)
	assert.Equal(t, uint64(42), version)
	assert.Equal(t, 3, idx)
}

func TestCallbackData_InvalidAnswer(t *testing.T) {
	for _, raw := range []string{
		"answer",
		"answer:1",
		"answer:x:1",
		"answer:1:x",
		"answer:1:-1",
		"answer:1:2:3",
		"count:1:2",
	} {
		_, _, ok := decodeCallback(raw).answer()
		assert.False(t, ok, raw)
	}
}

func TestCallbackData_Count(t *testing.T) {
	cd := decodeCallback(buildCountCallback(15))
	assert.Equal(t, actionCount, cd.Action)

	n, ok := cd.count()
	require.True(t, ok)
	assert.Equal(t, 15, n)

	_, ok = decodeCallback("count:many").count()
	assert.False(t, ok)
	_, ok = decodeCallback("count").count()
	assert.False(t, ok)
}

func TestCallbackData_PlainActions(t *testing.T) {
	for _, action := range []string{actionPlay, actionNext, actionRestart, actionMenu, actionOptions, actionStats} {
		cd := decodeCallback(callbackData{Action: action}.encode())
		assert.Equal(t, action, cd.Action)
		assert.Empty(t, cd.Params)
	}
}
