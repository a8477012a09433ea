// internal/publisher/builder.go
package publisher

import (
	"time"

	cfg "github.com/tamzrod/sun2000-bridge/internal/config"
	pmqtt "github.com/tamzrod/sun2000-bridge/internal/publisher/mqtt"
)

// Build creates one Publisher per configured broker, in config order.
// Nothing is dialed here; publishers connect lazily on first publish.
// The returned closer disconnects every broker.
func Build(c *cfg.Config) ([]*Publisher, func(), error) {
	connectTimeout := time.Duration(c.Poll.ConnectTimeoutMs) * time.Millisecond
	serviceTimeout := time.Duration(c.Poll.ServiceTimeoutMs) * time.Millisecond

	var (
		pubs    []*Publisher
		clients []*pmqtt.Client
	)

	for _, b := range c.Brokers {
		mc, err := pmqtt.New(pmqtt.Config{
			Server:      b.Server,
			ClientID:    b.ClientID,
			Username:    b.Username,
			Password:    b.Password,
			QoS:         b.QoS,
			WaitTimeout: connectTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		clients = append(clients, mc)

		pubs = append(pubs, New(Config{
			Name:           b.Name,
			Prefix:         b.Prefix,
			ConnectTimeout: connectTimeout,
			ServiceTimeout: serviceTimeout,
		}, mc))
	}

	closeAll := func() {
		for _, mc := range clients {
			mc.Close()
		}
	}

	return pubs, closeAll, nil
}
