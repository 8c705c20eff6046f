package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMetricLine matches a sample while tolerating the otel scope labels the
// exporter adds.
func assertMetricLine(t *testing.T, output, name, labels, value string) {
	t.Helper()
	assert.Regexp(t, name+`\{[^}]*`+labels+`[^}]*\} `+value, output)
}

func TestBusinessMetrics(t *testing.T) {
	provider, err := NewProvider("biz")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "biz")
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordOperation(ctx, "auth", "session_authorize", "success")
	bm.RecordOperation(ctx, "auth", "session_authorize", "success")
	bm.RecordOperation(ctx, "auth", "session_authorize", "token_revoked")
	bm.RecordOperation(ctx, "carts", "cart_add_item", "success")
	bm.RecordDuration(ctx, "auth", "session_authorize", 2*time.Millisecond, "success")
	bm.RecordDuration(ctx, "auth", "session_authorize", 3*time.Millisecond, "success")

	output := scrape(t, provider)

	assertMetricLine(t, output, `biz_operations_total`,
		`domain="auth".*operation="session_authorize".*status="success"`, `2`)
	assertMetricLine(t, output, `biz_operations_total`,
		`domain="auth".*operation="session_authorize".*status="token_revoked"`, `1`)
	assertMetricLine(t, output, `biz_operations_total`,
		`domain="carts".*operation="cart_add_item".*status="success"`, `1`)
	assertMetricLine(t, output, `biz_operation_duration_seconds_count`,
		`domain="auth".*operation="session_authorize".*status="success"`, `2`)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	m := NewNoOpBusinessMetrics()

	assert.IsType(t, &NoOpBusinessMetrics{}, m)
	assert.NotPanics(t, func() {
		m.RecordOperation(context.Background(), "users", "user_register", "success")
		m.RecordDuration(context.Background(), "users", "user_register", time.Millisecond, "success")
	})
}
