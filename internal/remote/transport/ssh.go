package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/ssh"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/shellfs/internal/logging"
	"github.com/GriffinCanCode/shellfs/internal/remote/outcome"
	"github.com/GriffinCanCode/shellfs/internal/shared/paths"
)

// SSHConfig describes how to reach a target over SSH.
type SSHConfig struct {
	Address     string // host:port
	User        string
	Password    string
	KeyPEM      []byte // private key material, preferred over Password when set
	RootCommand string // privilege prefix for ExecuteAsRoot, e.g. "su -c" or "sudo sh -c"
	DialTimeout time.Duration
}

// SSHRunner executes commands on a target over an SSH connection, one
// session per command.
type SSHRunner struct {
	client      *ssh.Client
	rootCommand string
	sessionID   string
	log         *logging.Logger
}

// NewSSH dials the target and returns a connected runner.
func NewSSH(cfg SSHConfig, log *logging.Logger) (*SSHRunner, error) {
	var auth []ssh.AuthMethod
	if len(cfg.KeyPEM) > 0 {
		signer, err := ssh.ParsePrivateKey(cfg.KeyPEM)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		auth = append(auth, ssh.Password(cfg.Password))
	}

	timeout := cfg.DialTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	client, err := ssh.Dial("tcp", cfg.Address, &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // targets are lab devices without known_hosts
		Timeout:         timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.Address, err)
	}

	r := &SSHRunner{
		client:      client,
		rootCommand: cfg.RootCommand,
		sessionID:   uuid.NewString(),
		log:         log,
	}
	log.Info("ssh target connected",
		zap.String("address", cfg.Address),
		zap.String("session_id", r.sessionID))
	return r, nil
}

// Execute runs one command in a fresh SSH session and captures its stderr
// as the diagnostic text.
func (r *SSHRunner) Execute(ctx context.Context, command string) (outcome.Outcome, error) {
	return r.run(ctx, command, io.Discard)
}

// Output runs one command and additionally captures its stdout, for
// commands whose listing output the caller must parse.
func (r *SSHRunner) Output(ctx context.Context, command string) (string, outcome.Outcome, error) {
	var stdout bytes.Buffer
	out, err := r.run(ctx, command, &stdout)
	return stdout.String(), out, err
}

func (r *SSHRunner) run(ctx context.Context, command string, stdout io.Writer) (outcome.Outcome, error) {
	if r.client == nil {
		return outcome.Outcome{}, fmt.Errorf("ssh runner closed")
	}

	session, err := r.client.NewSession()
	if err != nil {
		return outcome.Outcome{}, fmt.Errorf("open session: %w", err)
	}
	defer session.Close()

	var stderr bytes.Buffer
	session.Stdout = stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() { done <- session.Run(command) }()

	select {
	case <-ctx.Done():
		// Signal then abandon; the session is single-use anyway.
		_ = session.Signal(ssh.SIGKILL)
		return outcome.Outcome{}, ctx.Err()
	case err = <-done:
	}

	text := stderr.String()
	if err != nil && text == "" {
		// Non-zero exit with a silent stderr still has to surface as text,
		// since text presence is the only failure signal upstream.
		text = err.Error()
	}

	r.log.Debug("remote command executed",
		zap.String("session_id", r.sessionID),
		zap.String("command", command),
		zap.Bool("ok", text == ""))

	return outcome.Outcome{Command: command, Text: text}, nil
}

// ExecuteAsRoot runs the command behind the configured privilege prefix.
// The inner command is quoted as a whole; it routinely contains quoted path
// arguments of its own.
func (r *SSHRunner) ExecuteAsRoot(ctx context.Context, command string) (outcome.Outcome, error) {
	if r.rootCommand == "" {
		return r.Execute(ctx, command)
	}
	return r.Execute(ctx, r.rootCommand+" "+paths.Escape(command))
}

// Available reports whether the SSH connection is still open.
func (r *SSHRunner) Available() bool {
	if r.client == nil {
		return false
	}
	// A keepalive request doubles as the liveness probe.
	_, _, err := r.client.SendRequest("keepalive@openssh.com", true, nil)
	return err == nil
}

// Close tears down the SSH connection.
func (r *SSHRunner) Close() error {
	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}
