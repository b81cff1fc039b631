package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for playlist management.
type Metrics struct {
	// Playlists removed, by mode ("single", "bulk")
	Deleted *prometheus.CounterVec

	// Delete requests refused for lack of PLAYLIST_DELETE
	DeleteDenied prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Deleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mediaconsole_playlists_deleted_total",
			Help: "Playlists deleted by mode",
		}, []string{"mode"}),
		DeleteDenied: factory.NewCounter(prometheus.CounterOpts{
			Name: "mediaconsole_playlists_delete_denied_total",
			Help: "Playlist delete requests denied by permission",
		}),
	}
}

// DeleteMode labels how playlists were deleted: one by its own route, or a
// batch through the bulk route.
type DeleteMode string

const (
	ModeSingle DeleteMode = "single"
	ModeBulk   DeleteMode = "bulk"
)

// IncrementDeleted counts n playlists deleted in mode.
func (m *Metrics) IncrementDeleted(mode DeleteMode, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Deleted.WithLabelValues(string(mode)).Add(float64(n))
}

func (m *Metrics) IncrementDeleteDenied() {
	if m != nil {
		m.DeleteDenied.Inc()
	}
}
