package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KilimcininKorOglu/snmpber/internal/ber"
)

func TestObserve(t *testing.T) {
	m, err := New("")
	require.NoError(t, err)

	m.Observe(OpDecode, ber.KindSequence, 40, nil)
	m.Observe(OpDecode, ber.KindSequence, 60, nil)
	m.Observe(OpDecode, ber.KindUnknown, 3, errors.New("truncated"))
	m.Observe(OpEncode, ber.KindInteger, 3, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues(OpDecode, "SEQUENCE", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(OpDecode, "Unknown", ResultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues(OpEncode, "INTEGER", ResultOK)))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.Bytes.WithLabelValues(OpDecode)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Bytes.WithLabelValues(OpEncode)))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe(OpEncode, ber.KindNull, 2, nil)
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	m, err := New("test")
	require.NoError(t, err)
	m.Observe(OpDecode, ber.KindSequence, 40, nil)

	path := filepath.Join(t.TempDir(), "snmpber.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `test_operations_total{kind="SEQUENCE",op="decode",result="ok"} 1`)
	assert.Contains(t, string(data), `test_bytes_total{op="decode"} 40`)
}

func TestWriteTextfileBadPath(t *testing.T) {
	m, err := New("")
	require.NoError(t, err)
	err = m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}
