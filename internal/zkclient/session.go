package zkclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-zookeeper/zk"

	"zkcli/internal/logging"
	"zkcli/internal/zkerr"
	"zkcli/internal/zpath"
)

// Options configures Dial.
type Options struct {
	Address        string
	SessionTimeout time.Duration
	ConnectTimeout time.Duration
	Logger         *slog.Logger
}

const (
	defaultSessionTimeout = 10 * time.Second
	defaultConnectTimeout = 5 * time.Second
)

// Session is a live connection to the ensemble.
type Session struct {
	conn   *zk.Conn
	addr   Address
	logger *slog.Logger
}

// Dial connects to the ensemble and blocks until the session is established,
// the connect timeout elapses or ctx is cancelled.
func Dial(ctx context.Context, opts Options) (*Session, error) {
	addr, err := ParseAddress(opts.Address)
	if err != nil {
		return nil, err
	}
	logger := logging.NewComponentLogger(opts.Logger, "zkclient")
	sessionTimeout := opts.SessionTimeout
	if sessionTimeout <= 0 {
		sessionTimeout = defaultSessionTimeout
	}
	connectTimeout := opts.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}

	logger.Info("connecting", logging.String("address", addr.String()))
	started := time.Now()
	conn, events, err := zk.Connect(addr.Servers, sessionTimeout, zk.WithLogger(libraryLogger{logger: logger}))
	if err != nil {
		return nil, zkerr.Wrap(zkerr.ErrConnect, "dial", addr.String(), err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := awaitSession(waitCtx, events, logger); err != nil {
		conn.Close()
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, fmt.Errorf("dial %s: %w", addr, ctx.Err())
		}
		return nil, zkerr.Wrap(zkerr.ErrConnect, "dial", addr.String(), err)
	}
	go drainEvents(events, logger)

	logger.Info("connected",
		logging.Int64("zk_session", conn.SessionID()),
		logging.Duration("elapsed", time.Since(started)),
	)
	return &Session{conn: conn, addr: addr, logger: logger}, nil
}

func awaitSession(ctx context.Context, events <-chan zk.Event, logger *slog.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-events:
			if !ok {
				return errors.New("event channel closed before session was established")
			}
			logger.Debug("session event", logging.String("state", evt.State.String()))
			switch evt.State {
			case zk.StateHasSession:
				return nil
			case zk.StateAuthFailed:
				return errors.New("authentication failed")
			case zk.StateExpired:
				return errors.New("session expired during handshake")
			}
		}
	}
}

func drainEvents(events <-chan zk.Event, logger *slog.Logger) {
	for evt := range events {
		logger.Debug("session event",
			logging.String("state", evt.State.String()),
			logging.String("type", evt.Type.String()),
		)
	}
}

// Close ends the session. The service expires the session's ephemeral nodes.
func (s *Session) Close() {
	if s == nil || s.conn == nil {
		return
	}
	s.conn.Close()
}

// Address returns the parsed connect string.
func (s *Session) Address() Address {
	return s.addr
}

func (s *Session) Children(ctx context.Context, p zpath.Path) ([]string, error) {
	return await(ctx, "children", p, func() ([]string, error) {
		children, _, err := s.conn.Children(s.addr.resolve(p))
		if err != nil {
			return nil, translate("children", p, err)
		}
		return children, nil
	})
}

type getResult struct {
	data []byte
	stat Stat
}

func (s *Session) Get(ctx context.Context, p zpath.Path) ([]byte, Stat, error) {
	res, err := await(ctx, "get", p, func() (getResult, error) {
		data, stat, err := s.conn.Get(s.addr.resolve(p))
		if err != nil {
			return getResult{}, translate("get", p, err)
		}
		return getResult{data: data, stat: convertStat(stat)}, nil
	})
	return res.data, res.stat, err
}

func (s *Session) Set(ctx context.Context, p zpath.Path, data []byte, expectedVersion int32) (Stat, error) {
	return await(ctx, "set", p, func() (Stat, error) {
		stat, err := s.conn.Set(s.addr.resolve(p), data, expectedVersion)
		if err != nil {
			return Stat{}, translate("set", p, err)
		}
		return convertStat(stat), nil
	})
}

func (s *Session) Create(ctx context.Context, p zpath.Path, data []byte, mode CreateMode, acl []ACL) (zpath.Path, error) {
	return await(ctx, "create", p, func() (zpath.Path, error) {
		created, err := s.conn.Create(s.addr.resolve(p), data, createFlags(mode), convertACL(acl))
		if err != nil {
			return zpath.Path{}, translate("create", p, err)
		}
		out, err := s.addr.strip(created)
		if err != nil {
			return zpath.Path{}, zkerr.Wrap(zkerr.ErrIO, "create", p.String(), err)
		}
		return out, nil
	})
}

func (s *Session) Delete(ctx context.Context, p zpath.Path, expectedVersion int32) error {
	_, err := await(ctx, "delete", p, func() (struct{}, error) {
		if err := s.conn.Delete(s.addr.resolve(p), expectedVersion); err != nil {
			return struct{}{}, translate("delete", p, err)
		}
		return struct{}{}, nil
	})
	return err
}

func (s *Session) Exists(ctx context.Context, p zpath.Path) (bool, error) {
	return await(ctx, "exists", p, func() (bool, error) {
		ok, _, err := s.conn.Exists(s.addr.resolve(p))
		if err != nil {
			return false, translate("exists", p, err)
		}
		return ok, nil
	})
}

func (s *Session) Stat(ctx context.Context, p zpath.Path) (Stat, error) {
	return await(ctx, "stat", p, func() (Stat, error) {
		ok, stat, err := s.conn.Exists(s.addr.resolve(p))
		if err != nil {
			return Stat{}, translate("stat", p, err)
		}
		if !ok {
			return Stat{}, zkerr.Wrap(zkerr.ErrNodeNotFound, "stat", p.String(), nil)
		}
		return convertStat(stat), nil
	})
}

// await runs call on its own goroutine and returns as soon as either call
// finishes or ctx is done. go-zookeeper requests take no context, so an
// abandoned call keeps running until the connection closes.
func await[T any](ctx context.Context, op string, p zpath.Path, call func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, interrupted(op, p, err)
	}
	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		value, err := call()
		done <- result{value: value, err: err}
	}()
	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		return zero, interrupted(op, p, ctx.Err())
	}
}

func createFlags(mode CreateMode) int32 {
	var flags int32
	if mode.Persistence == Ephemeral {
		flags |= int32(zk.FlagEphemeral)
	}
	if mode.Sequential {
		flags |= int32(zk.FlagSequence)
	}
	return flags
}

func convertACL(acl []ACL) []zk.ACL {
	if len(acl) == 0 {
		acl = OpenACL()
	}
	out := make([]zk.ACL, 0, len(acl))
	for _, entry := range acl {
		out = append(out, zk.ACL{Perms: entry.Perms, Scheme: entry.Scheme, ID: entry.ID})
	}
	return out
}

func convertStat(stat *zk.Stat) Stat {
	if stat == nil {
		return Stat{}
	}
	return Stat{
		Version:        stat.Version,
		CVersion:       stat.Cversion,
		AVersion:       stat.Aversion,
		DataLength:     stat.DataLength,
		NumChildren:    stat.NumChildren,
		EphemeralOwner: stat.EphemeralOwner,
		Czxid:          stat.Czxid,
		Mzxid:          stat.Mzxid,
		Ctime:          time.UnixMilli(stat.Ctime).UTC(),
		Mtime:          time.UnixMilli(stat.Mtime).UTC(),
	}
}

// translate maps library errors onto the zkerr taxonomy.
func translate(op string, p zpath.Path, err error) error {
	switch {
	case errors.Is(err, zk.ErrNoNode):
		return zkerr.Wrap(zkerr.ErrNodeNotFound, op, p.String(), err)
	case errors.Is(err, zk.ErrNodeExists):
		return zkerr.Wrap(zkerr.ErrNodeExists, op, p.String(), err)
	case errors.Is(err, zk.ErrBadVersion):
		return zkerr.Wrap(zkerr.ErrVersionConflict, op, p.String(), err)
	case errors.Is(err, zk.ErrNotEmpty):
		return zkerr.Wrap(zkerr.ErrNotEmpty, op, p.String(), err)
	default:
		return zkerr.Wrap(zkerr.ErrIO, op, p.String(), err)
	}
}

func interrupted(op string, p zpath.Path, err error) error {
	return fmt.Errorf("%s %s: %w", op, p, err)
}

// libraryLogger routes go-zookeeper's printf logging into slog.
type libraryLogger struct {
	logger *slog.Logger
}

func (l libraryLogger) Printf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
