// Package natsdist adapts the engine's distribution channel and command
// surface onto NATS subjects. Delivery is best effort: observers that miss an
// event recover from the next state snapshot.
package natsdist

import (
	"encoding/json"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"bigtwo/internal/engine"
)

// Connect dials the NATS server at url, falling back to NATS_URL or localhost.
func Connect(url string) (*nats.Conn, error) {
	if url == "" {
		url = os.Getenv("NATS_URL")
	}
	if url == "" {
		url = nats.DefaultURL
	}
	opts := []nats.Option{
		nats.Name("bigtwo-server"),
		nats.Timeout(10 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(5),
	}
	return nats.Connect(url, opts...)
}

// Distributor publishes room events to "bigtwo.room.<id>.events".
type Distributor struct {
	nc  *nats.Conn
	log *logrus.Logger
}

// NewDistributor wraps an established connection.
func NewDistributor(nc *nats.Conn, log *logrus.Logger) *Distributor {
	return &Distributor{nc: nc, log: log}
}

// Publish implements engine.Distributor.
func (d *Distributor) Publish(roomID string, ev engine.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		d.log.WithError(err).Error("marshal room event")
		return
	}
	subject := "bigtwo.room." + roomID + ".events"
	if err := d.nc.Publish(subject, data); err != nil {
		// Dropped notifications are harmless; observers re-derive from state.
		d.log.WithError(err).WithField("subject", subject).Warn("publish room event")
	}
}
