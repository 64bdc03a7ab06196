package disposal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/cache"
	"github.com/randytsao24/wastewizard/internal/fetch"
	"github.com/randytsao24/wastewizard/internal/models"
	"github.com/randytsao24/wastewizard/internal/outcome"
)

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain tags", "<p>Recycle it</p>", "Recycle it"},
		{"escaped markup", "&lt;ul&gt;&lt;li&gt;Empty and rinse&lt;/li&gt;&lt;li&gt;Place in the &lt;strong&gt;Blue Bin&lt;/strong&gt;&lt;/li&gt;&lt;/ul&gt;", "Empty and rinse Place in the Blue Bin"},
		{"entities and whitespace", "Don&#x27;t   bag it.\n&nbsp;Tie   it &amp; set out", "Don't bag it. Tie it & set out"},
		{"script dropped", "<p>Keep</p><script>alert(1)</script><p>going</p>", "Keep going"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTMLToText(tt.in))
		})
	}
}

var foilCatalogue = []models.DisposalRecord{
	{Category: "Blue Bin", Keywords: "foil,aluminum foil", Body: "<p>Recycle it</p>"},
}

func TestMatchRecords(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		got, ok := MatchRecords(foilCatalogue, "aluminum foil")
		require.True(t, ok)
		assert.Equal(t, Match{Term: "aluminum foil", Instructions: "Recycle it", Category: "Blue Bin", Exact: true}, got)
	})

	t.Run("close", func(t *testing.T) {
		got, ok := MatchRecords(foilCatalogue, "foi")
		require.True(t, ok)
		assert.False(t, got.Exact)
		assert.Equal(t, "Recycle it", got.Instructions)
		assert.Equal(t, "aluminum foil", got.Term, "last containing keyword wins")
	})

	t.Run("none", func(t *testing.T) {
		_, ok := MatchRecords(foilCatalogue, "xyz")
		assert.False(t, ok)
	})
}

func TestMatchRecordsExactBeatsEarlierCloseMatches(t *testing.T) {
	records := []models.DisposalRecord{
		{Category: "Garbage", Keywords: "coffee cup, coffee cup lid", Body: "Garbage"},
		{Category: "Blue Bin", Keywords: " Coffee  ,tea", Body: "Blue Bin"},
	}

	got, ok := MatchRecords(records, "coffee")
	require.True(t, ok)
	assert.True(t, got.Exact)
	assert.Equal(t, "Blue Bin", got.Category)
}

func TestMatchRecordsLastCloseMatchWins(t *testing.T) {
	records := []models.DisposalRecord{
		{Category: "Blue Bin", Keywords: "pizza box", Body: "first"},
		{Category: "Green Bin", Keywords: "pizza crust", Body: "second"},
		{Category: "Garbage", Keywords: "paper", Body: "third"},
	}

	got, ok := MatchRecords(records, "pizza")
	require.True(t, ok)
	assert.Equal(t, Match{Term: "pizza crust", Instructions: "second", Category: "Green Bin"}, got)

	again, _ := MatchRecords(records, "pizza")
	assert.Equal(t, got, again)
}

func TestNormalizeTerm(t *testing.T) {
	assert.Equal(t, "aluminum foil", NormalizeTerm("  Aluminum Foil "))
	assert.Equal(t, "", NormalizeTerm("   "))
}

const catalogueJSON = `[
	{"category": "Blue Bin", "keywords": "foil,aluminum foil", "body": "&lt;p&gt;Recycle it&lt;/p&gt;", "title": "Aluminum foil"},
	{"category": "Garbage", "keywords": "diapers", "body": "&lt;p&gt;Garbage&lt;/p&gt;", "title": "Diapers"}
]`

func newTestMatcher(t *testing.T, status int, body string) (*Matcher, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	records := cache.New[[]models.DisposalRecord](time.Hour)
	t.Cleanup(records.Close)

	catalogue := NewCatalogue(srv.URL, fetch.New(time.Second, zap.NewNop(), nil), records, zap.NewNop(), nil)
	return NewMatcher(catalogue, zap.NewNop()), &hits
}

func TestMatcherFind(t *testing.T) {
	m, hits := newTestMatcher(t, http.StatusOK, catalogueJSON)

	got, err := m.Find(context.Background(), "aluminum foil")
	require.NoError(t, err)
	assert.Equal(t, "Recycle it", got.Instructions)
	assert.True(t, got.Exact)

	got, err = m.Find(context.Background(), "diaper")
	require.NoError(t, err)
	assert.Equal(t, "diapers", got.Term)

	_, err = m.Find(context.Background(), "xyz")
	assert.True(t, errors.Is(err, outcome.NoMatch))

	assert.Equal(t, int32(1), hits.Load(), "catalogue fetched once")
}

func TestMatcherFindEmptyTerm(t *testing.T) {
	m, hits := newTestMatcher(t, http.StatusOK, catalogueJSON)

	_, err := m.Find(context.Background(), "")
	assert.Equal(t, outcome.NoMatch, outcome.ReasonOf(err))
	assert.Equal(t, int32(0), hits.Load())
}

func TestMatcherFindRemoteUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"not json", http.StatusOK, "<html>maintenance</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMatcher(t, tt.status, tt.body)

			_, err := m.Find(context.Background(), "foil")
			require.Error(t, err)
			assert.Equal(t, outcome.RemoteUnavailable, outcome.ReasonOf(err))
		})
	}
}
