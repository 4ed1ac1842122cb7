// Package ssh executes commands on broker VMs using the cluster's
// generated admin key.
package ssh

import (
	"context"
	"fmt"
	"net"
	"time"

	"golang.org/x/crypto/ssh"
)

// DefaultTimeout bounds connection establishment per host.
const DefaultTimeout = 10 * time.Second

// Runner executes commands on remote hosts as root, the user cloud-init
// installs the admin key for.
type Runner struct {
	user    string
	signer  ssh.Signer
	timeout time.Duration
}

// NewRunner creates a runner authenticating with a PEM-encoded private
// key.
func NewRunner(privateKey []byte) (*Runner, error) {
	signer, err := ssh.ParsePrivateKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	return &Runner{user: "root", signer: signer, timeout: DefaultTimeout}, nil
}

// Execute runs command on host (an address without port) and returns
// its stdout.
func (r *Runner) Execute(ctx context.Context, host, command string) (string, error) {
	config := &ssh.ClientConfig{
		User: r.user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(r.signer),
		},
		// Broker host keys are generated at first boot and recorded
		// nowhere we could verify them against.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         r.timeout,
	}

	d := net.Dialer{Timeout: r.timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, "22"))
	if err != nil {
		return "", fmt.Errorf("dialing %s: %w", host, err)
	}
	clientConn, chans, reqs, err := ssh.NewClientConn(conn, host, config)
	if err != nil {
		conn.Close()
		return "", fmt.Errorf("ssh handshake with %s: %w", host, err)
	}
	client := ssh.NewClient(clientConn, chans, reqs)
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create session on %s: %w", host, err)
	}
	defer session.Close()

	out, err := session.Output(command)
	if err != nil {
		return "", fmt.Errorf("running %q on %s: %w", command, host, err)
	}
	return string(out), nil
}
