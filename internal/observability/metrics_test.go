package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAuthOutcome(t *testing.T) {
	ok := AuthEventsTotal.WithLabelValues("test_login", "success")
	bad := AuthEventsTotal.WithLabelValues("test_login", "failure")
	beforeOK, beforeBad := testutil.ToFloat64(ok), testutil.ToFloat64(bad)

	RecordAuth("test_login", nil)
	RecordAuth("test_login", errors.New("nope"))
	RecordAuth("test_login", errors.New("nope"))

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(ok))
	assert.Equal(t, beforeBad+2, testutil.ToFloat64(bad))
}

func TestObserveRequestCountsByStatus(t *testing.T) {
	c := HTTPRequestsTotal.WithLabelValues("GET", "/test", "404")
	before := testutil.ToFloat64(c)

	ObserveRequest("GET", "/test", 404, time.Now())

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
