package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rangepicker"

type metrics struct {
	transitionsTotal *prometheus.CounterVec
	commitsTotal     *prometheus.CounterVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		transitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Total number of picker transitions by event and outcome.",
		}, []string{"event", "result"}),
		commitsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_total",
			Help:      "Total number of commit attempts by outcome.",
		}, []string{"result"}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}

// Recorder reports picker outcomes to the default prometheus registry.
type Recorder struct{}

func NewRecorder() Recorder {
	getMetrics()
	return Recorder{}
}

func (Recorder) Transition(event, result string) {
	getMetrics().transitionsTotal.WithLabelValues(event, result).Inc()
}

func (Recorder) Commit(result string) {
	getMetrics().commitsTotal.WithLabelValues(result).Inc()
}

// Dump renders the picker's counters from the default gatherer as
// "name{label="value",...} count" lines, sorted.
func Dump() ([]string, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), namespace+"_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			out = append(out, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(out)
	return out, nil
}
