package state

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/model"
)

func TestTypedRoundTripKeepsTimestamps(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 6, 789_000_000, time.UTC)
	in := []model.QAPair{{ID: "qa-1", DocumentID: "doc-1", Question: "q", Answer: "a", Timestamp: ts}}

	raw, err := Marshal(in)
	require.NoError(t, err)

	var out []model.QAPair
	require.NoError(t, Unmarshal(raw, &out))
	require.Len(t, out, 1)
	assert.True(t, out[0].Timestamp.Equal(ts))
	assert.Equal(t, in[0].Question, out[0].Question)
}

func TestUnmarshalAcceptsZonelessTimestamps(t *testing.T) {
	raw := []byte(`[{"id":"d1","name":"a.txt","size":3,"type":"text/plain","uploadDate":"2024-01-02T03:04:05.006","content":"abc"}]`)

	var docs []model.Document
	require.NoError(t, Unmarshal(raw, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC), docs[0].UploadDate)
	assert.Equal(t, "abc", docs[0].Content)
}

func TestUnmarshalLeavesDateLikeStringFieldsAlone(t *testing.T) {
	raw := []byte(`{"id":"d1","name":"2024-01-02T03:04:05","uploadDate":"2024-01-02T03:04:05Z"}`)

	var doc model.Document
	require.NoError(t, Unmarshal(raw, &doc))
	assert.Equal(t, "2024-01-02T03:04:05", doc.Name)
}

func TestDecodeValueRevivesNestedTimestamps(t *testing.T) {
	raw := []byte(`{"a":"2024-05-06T07:08:09.123Z","b":["2024-05-06T07:08:09",{"c":"2024-05-06"}],"n":42,"s":"hello"}`)

	v, err := DecodeValue(raw)
	require.NoError(t, err)
	m := v.(map[string]any)

	assert.Equal(t, time.Date(2024, 5, 6, 7, 8, 9, 123_000_000, time.UTC), m["a"])
	list := m["b"].([]any)
	assert.Equal(t, time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), list[0])
	assert.Equal(t, "2024-05-06", list[1].(map[string]any)["c"], "date without time is not revived")
	assert.Equal(t, json.Number("42"), m["n"])
	assert.Equal(t, "hello", m["s"])
}

func TestDecodeValueRejectsNonMatchingShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"nanoseconds", `"2024-05-06T07:08:09.123456Z"`},
		{"offset", `"2024-05-06T07:08:09+02:00"`},
		{"space separator", `"2024-05-06 07:08:09"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeValue([]byte(tt.in))
			require.NoError(t, err)
			assert.IsType(t, "", v)
		})
	}
}

func TestDecodeValueInvalidJSON(t *testing.T) {
	_, err := DecodeValue([]byte(`{"a":`))
	assert.Error(t, err)

	_, err = DecodeValue([]byte(`1 2`))
	assert.Error(t, err)
}

func TestReviveOutOfRangeStaysString(t *testing.T) {
	assert.Equal(t, "2024-13-40T25:61:61", Revive("2024-13-40T25:61:61"))
}
