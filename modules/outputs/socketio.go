package outputs

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/simforge/internal/ctxlog"
	"github.com/specialistvlad/simforge/internal/objects"
	"github.com/specialistvlad/simforge/internal/params"
	"github.com/zclconf/go-cty/cty"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// SocketIOInput defines the parameters of SocketIO.
type SocketIOInput struct {
	URL                string   `param:"url"`
	Namespace          string   `param:"namespace"`
	Event              string   `param:"event"`
	Timeout            string   `param:"timeout"`
	InsecureSkipVerify bool     `param:"insecure_skip_verify"`
	ExecuteOn          []string `param:"execute_on"`
}

// SocketIOSchema returns the schema of SocketIO.
func SocketIOSchema() *params.Schema {
	return params.NewSchema().
		Required("url", cty.String, "Socket.IO server URL, e.g. http://localhost:3000/socket.io/.").
		Default("namespace", cty.String, cty.StringVal("/"), "Namespace to connect to.").
		Default("event", cty.String, cty.StringVal("simforge:progress"), "Event name progress is emitted under.").
		Default("timeout", cty.String, cty.StringVal("10s"), "Connection timeout.").
		Default("insecure_skip_verify", cty.Bool, cty.False, "Skip TLS certificate verification.").
		Default("execute_on", cty.List(cty.String), executeOnDefault(), "Event kinds to emit: initial, timestep, final.")
}

// conn is the part of a socket.io client SocketIO uses.
type conn interface {
	Emit(ev string, args ...any) error
	Close()
}

type dialFunc func(ctx context.Context, cfg SocketIOInput, timeout time.Duration) (conn, error)

// SocketIO streams progress events to a Socket.IO server. It connects on the
// first event, so building the object never touches the network.
type SocketIO struct {
	objects.Base
	cfg     SocketIOInput
	timeout time.Duration
	dial    dialFunc
	conn    conn
}

func newSocketIO(dial dialFunc) func(c objects.Context, p *params.Set) (objects.Object, error) {
	return func(c objects.Context, p *params.Set) (objects.Object, error) {
		var cfg SocketIOInput
		if err := p.Decode(&cfg); err != nil {
			return nil, err
		}
		u, err := url.Parse(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("url: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("url %q must include a scheme and host", cfg.URL)
		}
		timeout, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("timeout: %w", err)
		}
		if bad := checkExecuteOn(cfg.ExecuteOn); len(bad) > 0 {
			return nil, fmt.Errorf("execute_on: unknown event kinds %v", bad)
		}
		return &SocketIO{Base: objects.NewBase(c, p), cfg: cfg, timeout: timeout, dial: dial}, nil
	}
}

func (o *SocketIO) ExecuteOn() []string { return o.cfg.ExecuteOn }

// Output implements Output.
func (o *SocketIO) Output(ctx context.Context, ev Event) error {
	if o.conn == nil {
		c, err := o.dial(ctx, o.cfg, o.timeout)
		if err != nil {
			return fmt.Errorf("output %q: %w", o.Name(), err)
		}
		o.conn = c
	}
	payload := map[string]any{
		"output":      o.Name(),
		"kind":        ev.Kind,
		"step":        ev.Step,
		"time":        ev.Time,
		"executioner": ev.Executioner,
	}
	if err := o.conn.Emit(o.cfg.Event, payload); err != nil {
		return fmt.Errorf("output %q: emitting %q: %w", o.Name(), o.cfg.Event, err)
	}
	return nil
}

// Close disconnects if a connection was made.
func (o *SocketIO) Close() error {
	if o.conn != nil {
		o.conn.Close()
		o.conn = nil
	}
	return nil
}

type socketConn struct{ io *socket.Socket }

func (s socketConn) Emit(ev string, args ...any) error { return s.io.Emit(ev, args...) }
func (s socketConn) Close()                            { s.io.Disconnect() }

// dialSocketIO connects and waits for the connect event.
func dialSocketIO(ctx context.Context, cfg SocketIOInput, timeout time.Duration) (conn, error) {
	logger := ctxlog.FromContext(ctx).With("output", "socketio", "url", cfg.URL)

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		connectChan <- err
	})

	logger.Debug("Initiating connection...")
	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return socketConn{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}
