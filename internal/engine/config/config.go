package config

import (
	"maps"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/w-h-a/notify/internal/engine/clients/broker"
	"github.com/w-h-a/notify/internal/engine/clients/sites"
	"github.com/w-h-a/notify/internal/event"
)

var (
	instance *config
	once     sync.Once
)

type config struct {
	env            string
	name           string
	version        string
	httpAddress    string
	tracesAddress  string
	metricsAddress string
	sites          string
	sitesLocation  string
	broker         string
	brokerLocation string
	brokerDurable  bool
	eventQueues    map[string]int
	webhookTimeout time.Duration
}

func New() {
	once.Do(func() {
		instance = &config{
			env:            "dev",
			name:           "notify",
			version:        "0.1.0-alpha.0",
			httpAddress:    ":4000",
			tracesAddress:  "localhost:4318",
			metricsAddress: "localhost:4318",
			sites:          "memory",
			sitesLocation:  "",
			broker:         "memory",
			brokerLocation: "",
			brokerDurable:  false,
			eventQueues:    map[string]int{event.Queue: 1},
			webhookTimeout: 10 * time.Second,
		}

		env := os.Getenv("ENV")
		if len(env) > 0 {
			instance.env = env
		}

		name := os.Getenv("NAME")
		if len(name) > 0 {
			instance.name = name
		}

		version := os.Getenv("VERSION")
		if len(version) > 0 {
			instance.version = version
		}

		httpAddress := os.Getenv("HTTP_ADDRESS")
		if len(httpAddress) > 0 {
			instance.httpAddress = httpAddress
		}

		tracesAddress := os.Getenv("TRACES_ADDRESS")
		if len(tracesAddress) > 0 {
			instance.tracesAddress = tracesAddress
		}

		metricsAddress := os.Getenv("METRICS_ADDRESS")
		if len(metricsAddress) > 0 {
			instance.metricsAddress = metricsAddress
		}

		s := os.Getenv("SITES")
		if len(s) > 0 {
			if _, ok := sites.SitesTypes[s]; ok {
				instance.sites = s
			} else {
				panic("unsupported sites store")
			}
		}

		sitesLocation := os.Getenv("SITES_LOCATION")
		if len(sitesLocation) > 0 {
			instance.sitesLocation = sitesLocation
		}

		b := os.Getenv("BROKER")
		if len(b) > 0 {
			if _, ok := broker.BrokerTypes[b]; ok {
				instance.broker = b
			} else {
				panic("unsupported broker")
			}
		}

		brokerLocation := os.Getenv("BROKER_LOCATION")
		if len(brokerLocation) > 0 {
			instance.brokerLocation = brokerLocation
		}

		brokerDurable := os.Getenv("BROKER_DURABLE")
		if brokerDurable == "true" {
			instance.brokerDurable = true
		}

		qs := os.Getenv("EVENTS_QUEUE")
		if len(qs) > 0 {
			instance.eventQueues = map[string]int{}
			for _, q := range strings.Split(qs, ",") {
				q = strings.TrimSpace(q)
				if len(q) == 0 {
					continue
				}
				def := strings.Split(q, ":")
				name := strings.TrimSpace(def[0])
				if len(name) == 0 {
					panic("queue name cannot be empty")
				}
				concurrency := 1
				if len(def) == 2 {
					c, err := strconv.Atoi(strings.TrimSpace(def[1]))
					if err != nil {
						panic("queue concurrency is not an integer")
					}
					concurrency = c
				} else if len(def) > 2 {
					panic("invalid queue definition")
				}
				instance.eventQueues[name] = concurrency
			}
		}

		ec := os.Getenv("EVENTS_CONCURRENCY")
		if len(ec) > 0 {
			c, err := strconv.Atoi(ec)
			if err != nil || c < 1 {
				panic("events concurrency must be a positive integer")
			}
			for name := range instance.eventQueues {
				instance.eventQueues[name] = c
			}
		}

		webhookTimeout := os.Getenv("WEBHOOK_TIMEOUT")
		if len(webhookTimeout) > 0 {
			dur, err := time.ParseDuration(webhookTimeout)
			if err != nil {
				panic("invalid webhook timeout")
			}
			if dur < 0 {
				panic("webhook timeout cannot be negative")
			}
			instance.webhookTimeout = dur
		}
	})
}

func Env() string {
	if instance == nil {
		panic("cfg is nil")
	}

	return instance.env
}

func Name() string {
	if instance == nil {
		panic("cfg is nil")
	}

	return instance.name
}

func Version() string {
	if instance == nil {
		panic("cfg is nil")
	}

	return instance.version
}

func HttpAddress() string {
	if instance == nil {
		panic("cfg is nil")
	}

	return instance.httpAddress
}

func TracesAddress() string {
	if instance == nil {
		panic("cfg is nil")
	}

	return instance.tracesAddress
}

func MetricsAddress() string {
	if instance == nil {
		panic("cfg is nil")
	}

	return instance.metricsAddress
}

func Sites() string {
	if instance == nil {
		panic("cfg is nil")
	}

	return instance.sites
}

func SitesLocation() string {
	if instance == nil {
		panic("cfg is nil")
	}

	return instance.sitesLocation
}

func Broker() string {
	if instance == nil {
		panic("cfg is nil")
	}

	return instance.broker
}

func BrokerLocation() string {
	if instance == nil {
		panic("cfg is nil")
	}

	return instance.brokerLocation
}

func BrokerDurable() bool {
	if instance == nil {
		panic("cfg is nil")
	}

	return instance.brokerDurable
}

func EventQueues() map[string]int {
	if instance == nil {
		panic("cfg is nil")
	}

	queues := make(map[string]int, len(instance.eventQueues))

	maps.Copy(queues, instance.eventQueues)

	return queues
}

// WebhookTimeout bounds a single delivery. Zero means no client timeout.
func WebhookTimeout() time.Duration {
	if instance == nil {
		panic("cfg is nil")
	}

	return instance.webhookTimeout
}
