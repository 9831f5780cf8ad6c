package metric

import (
	"io"
	"strings"

	"github.com/prometheus/common/expfmt"

	"github.com/enola-dev/enola-sub007/errors"
)

// WriteText writes every metric family whose name starts with prefix in the
// Prometheus text exposition format. An empty prefix writes everything.
//
// The CLI uses this at exit instead of serving an HTTP endpoint.
func (r *MetricsRegistry) WriteText(w io.Writer, prefix string) error {
	families, err := r.prometheusRegistry.Gather()
	if err != nil {
		return errors.WrapTransient(err, "MetricsRegistry", "WriteText", "gather metrics")
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), prefix) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.WrapTransient(err, "MetricsRegistry", "WriteText", "write "+mf.GetName())
		}
	}
	return nil
}
