// Package health implements reachability checks against a running
// cluster's brokers.
package health

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"time"

	"github.com/kraftner/kraftner/internal/bootstrap"
	"github.com/kraftner/kraftner/internal/kafka"
	platform "github.com/kraftner/kraftner/internal/platform/hcloud"
	"github.com/kraftner/kraftner/internal/util/labels"
)

// DefaultDialTimeout bounds each port probe.
const DefaultDialTimeout = 5 * time.Second

// PortCheck is the result of probing a single port on a broker.
type PortCheck struct {
	Port    int
	Open    bool
	Latency time.Duration
	Err     string
}

// BrokerHealth is the result for one broker.
type BrokerHealth struct {
	Name    string
	Address string
	Checks  []PortCheck

	// Bootstrap is the outcome the broker recorded at the end of its
	// bootstrap run, nil when no status could be fetched.
	Bootstrap    *bootstrap.Status
	BootstrapErr string
}

// Healthy reports whether every probed port was reachable and the
// broker's bootstrap run, where its status could be read, ended ok.
// An unreadable status alone does not flag the broker: reachability is
// already captured by the port checks.
func (b BrokerHealth) Healthy() bool {
	for _, c := range b.Checks {
		if !c.Open {
			return false
		}
	}
	if b.Bootstrap != nil && b.Bootstrap.Outcome != bootstrap.OutcomeOK {
		return false
	}
	return len(b.Checks) > 0
}

// Report summarizes a cluster health check.
type Report struct {
	ClusterName string
	Brokers     []BrokerHealth
}

// Healthy reports whether every broker passed every check.
func (r Report) Healthy() bool {
	if len(r.Brokers) == 0 {
		return false
	}
	for _, b := range r.Brokers {
		if !b.Healthy() {
			return false
		}
	}
	return true
}

// Dialer is the probing function, swappable in tests.
type Dialer func(ctx context.Context, network, address string) (net.Conn, error)

// Checker probes the brokers of a cluster over TCP and, when a status
// reader is configured, fetches each broker's recorded bootstrap
// outcome.
type Checker struct {
	Servers platform.ServerManager
	Timeout time.Duration
	Ports   []int
	Dial    Dialer

	// Status is optional; nil skips the bootstrap status fetch.
	Status StatusReader
}

// NewChecker creates a checker probing the Kafka client port and SSH.
// The controller port is firewalled to the private network and is not
// probed from outside.
func NewChecker(servers platform.ServerManager) *Checker {
	d := net.Dialer{}
	return &Checker{
		Servers: servers,
		Timeout: DefaultDialTimeout,
		Ports:   []int{kafka.ClientPort, 22},
		Dial:    d.DialContext,
	}
}

// Check locates every broker of the cluster and probes its ports.
func (c *Checker) Check(ctx context.Context, clusterName string) (Report, error) {
	report := Report{ClusterName: clusterName}

	servers, err := c.Servers.GetServersBySelector(ctx, labels.BrokerSelector(clusterName))
	if err != nil {
		return report, fmt.Errorf("listing brokers: %w", err)
	}
	if len(servers) == 0 {
		return report, fmt.Errorf("no brokers found for cluster %q", clusterName)
	}

	for _, srv := range servers {
		bh := BrokerHealth{Name: srv.Name}
		if srv.PublicNet.IPv4.IP != nil {
			bh.Address = srv.PublicNet.IPv4.IP.String()
		}
		if bh.Address == "" {
			bh.Checks = append(bh.Checks, PortCheck{Err: "no public address"})
			report.Brokers = append(report.Brokers, bh)
			continue
		}
		for _, port := range c.Ports {
			bh.Checks = append(bh.Checks, c.probe(ctx, bh.Address, port))
		}
		if c.Status != nil {
			if st, err := c.Status.ReadStatus(ctx, bh.Address); err != nil {
				bh.BootstrapErr = err.Error()
			} else {
				bh.Bootstrap = &st
			}
		}
		report.Brokers = append(report.Brokers, bh)
	}

	sort.Slice(report.Brokers, func(i, j int) bool {
		return report.Brokers[i].Name < report.Brokers[j].Name
	})
	return report, nil
}

func (c *Checker) probe(ctx context.Context, address string, port int) PortCheck {
	check := PortCheck{Port: port}

	dialCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	start := time.Now()
	conn, err := c.Dial(dialCtx, "tcp", net.JoinHostPort(address, strconv.Itoa(port)))
	check.Latency = time.Since(start)
	if err != nil {
		check.Err = err.Error()
		return check
	}
	conn.Close()
	check.Open = true
	return check
}
