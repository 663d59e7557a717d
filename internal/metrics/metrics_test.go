package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selector-inspector/internal/entity"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	require.NoError(t, err)

	r.SelectorInferred(entity.SelectorKindIdentifier)
	r.SelectorInferred(entity.SelectorKindIdentifier)
	r.HoverTransition("idle->highlighting")
	r.ClipboardCopy("ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.inferences.WithLabelValues("identifier")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transitions.WithLabelValues("idle->highlighting")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.copies.WithLabelValues("ok")))
}

func TestRecorderDoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewRecorder(reg)
	require.NoError(t, err)

	_, err = NewRecorder(reg)
	assert.Error(t, err)
}
