package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(FilterNoMatch.WithLabelValues("cuisine"))
	FilterNoMatch.WithLabelValues("cuisine").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(FilterNoMatch.WithLabelValues("cuisine")))

	before = testutil.ToFloat64(Requests.WithLabelValues("keyword", "ok"))
	Requests.WithLabelValues("keyword", "ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Requests.WithLabelValues("keyword", "ok")))
}
