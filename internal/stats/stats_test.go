package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunFields(t *testing.T) {
	r := NewRun()
	r.StatesFetched.Add(120)
	r.StatesEmbedded.Add(120)
	r.PagesWritten.Add(1)
	r.BytesWritten.Add(4096)

	fields := r.Fields()
	assert.Len(t, fields, 7)

	byKey := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		byKey[f.Key] = f.Integer
	}
	assert.EqualValues(t, 120, byKey["states_fetched"])
	assert.EqualValues(t, 1, byKey["pages_written"])
	assert.EqualValues(t, 4096, byKey["bytes_written"])
	assert.EqualValues(t, 0, byKey["fetch_failures"])
}

func TestRunElapsed(t *testing.T) {
	r := NewRun()
	assert.GreaterOrEqual(t, r.Elapsed().Nanoseconds(), int64(0))
}
