package history

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPrependsNewest(t *testing.T) {
	var l List
	l = l.Record("zapatas")
	l = l.Record("vigas")

	assert.Equal(t, List{"vigas", "zapatas"}, l)
}

func TestRecordTruncatesToLimit(t *testing.T) {
	var l List
	for _, q := range []string{"a", "b", "c", "d"} {
		l = l.Record(q)
	}

	assert.Equal(t, List{"d", "c", "b"}, l)
}

func TestRecordMovesCaseInsensitiveDuplicateToFront(t *testing.T) {
	l := List{"Muro", "Losa", "Viga"}

	got := l.Record("viga")

	assert.Equal(t, List{"viga", "Muro", "Losa"}, got)
	assert.Len(t, got, 3, "re-recording must not grow the list")
}

func TestRecordDoesNotMutateReceiver(t *testing.T) {
	l := List{"a", "b", "c"}
	_ = l.Record("d")

	assert.Equal(t, List{"a", "b", "c"}, l)
}

func TestRecordInvariantsHoldForAnySequence(t *testing.T) {
	queries := []string{"Muro", "muro", "LOSA", "viga", "Losa", "pilote", "MURO", "zapata", "Viga"}

	var l List
	for i, q := range queries {
		l = l.Record(q)
		require.LessOrEqual(t, len(l), Limit, "step %d", i)
		require.Equal(t, q, l[0], "step %d", i)

		seen := map[string]bool{}
		for _, e := range l {
			key := strings.ToLower(e)
			require.False(t, seen[key], fmt.Sprintf("duplicate %q at step %d", e, i))
			seen[key] = true
		}
	}
}

func TestContainsAndAt(t *testing.T) {
	l := List{"Muro", "Losa"}

	assert.True(t, l.Contains("MURO"))
	assert.False(t, l.Contains("viga"))

	q, ok := l.At(1)
	assert.True(t, ok)
	assert.Equal(t, "Losa", q)

	_, ok = l.At(2)
	assert.False(t, ok)
	_, ok = l.At(-1)
	assert.False(t, ok)
}
