package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve_CountsByActionAndStatus(t *testing.T) {
	m := New("glamconnect")

	m.Observe("login", 200, 10*time.Millisecond)
	m.Observe("login", 200, 12*time.Millisecond)
	m.Observe("login", 401, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActionsTotal.WithLabelValues("login", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActionsTotal.WithLabelValues("login", "401")))
}
