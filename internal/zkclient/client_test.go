package zkclient

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-zookeeper/zk"

	"zkcli/internal/zkerr"
	"zkcli/internal/zpath"
)

func TestTranslateMapsLibraryErrors(t *testing.T) {
	p := zpath.MustNormalize("/a")
	cases := []struct {
		in   error
		want error
	}{
		{zk.ErrNoNode, zkerr.ErrNodeNotFound},
		{zk.ErrNodeExists, zkerr.ErrNodeExists},
		{zk.ErrBadVersion, zkerr.ErrVersionConflict},
		{zk.ErrNotEmpty, zkerr.ErrNotEmpty},
		{zk.ErrConnectionClosed, zkerr.ErrIO},
		{errors.New("weird"), zkerr.ErrIO},
	}
	for _, tc := range cases {
		err := translate("op", p, tc.in)
		if !errors.Is(err, tc.want) {
			t.Fatalf("translate(%v): expected %v, got %v", tc.in, tc.want, err)
		}
		if !errors.Is(err, tc.in) {
			t.Fatalf("translate(%v): cause lost in %v", tc.in, err)
		}
		if !strings.Contains(err.Error(), "/a") {
			t.Fatalf("translate(%v): path missing from %q", tc.in, err)
		}
	}
}

func TestParseAddress(t *testing.T) {
	cases := []struct {
		raw     string
		servers []string
		chroot  string
		str     string
	}{
		{"", []string{"localhost:2181"}, "/", "localhost:2181/"},
		{"localhost:2181/", []string{"localhost:2181"}, "/", "localhost:2181/"},
		{"zk1:2181,zk2:2181", []string{"zk1:2181", "zk2:2181"}, "/", "zk1:2181,zk2:2181/"},
		{"zk1:2181, zk2:2181/app/", []string{"zk1:2181", "zk2:2181"}, "/app", "zk1:2181,zk2:2181/app"},
	}
	for _, tc := range cases {
		addr, err := ParseAddress(tc.raw)
		if err != nil {
			t.Fatalf("ParseAddress(%q) returned error: %v", tc.raw, err)
		}
		if strings.Join(addr.Servers, ",") != strings.Join(tc.servers, ",") {
			t.Fatalf("ParseAddress(%q): got servers %v want %v", tc.raw, addr.Servers, tc.servers)
		}
		if addr.Chroot.String() != tc.chroot {
			t.Fatalf("ParseAddress(%q): got chroot %q want %q", tc.raw, addr.Chroot, tc.chroot)
		}
		if addr.String() != tc.str {
			t.Fatalf("ParseAddress(%q): got %q want %q", tc.raw, addr.String(), tc.str)
		}
	}
	if _, err := ParseAddress(",/app"); !errors.Is(err, zkerr.ErrConnect) {
		t.Fatalf("expected connect error for empty server list, got %v", err)
	}
}

func TestChrootResolveAndStrip(t *testing.T) {
	addr, err := ParseAddress("zk:2181/app")
	if err != nil {
		t.Fatalf("ParseAddress returned error: %v", err)
	}
	if got := addr.resolve(zpath.Root()); got != "/app" {
		t.Fatalf("unexpected root resolution: %q", got)
	}
	if got := addr.resolve(zpath.MustNormalize("/x/y")); got != "/app/x/y" {
		t.Fatalf("unexpected resolution: %q", got)
	}
	p, err := addr.strip("/app/x/seq0000000001")
	if err != nil {
		t.Fatalf("strip returned error: %v", err)
	}
	if p.String() != "/x/seq0000000001" {
		t.Fatalf("unexpected stripped path: %q", p)
	}
}

func TestParseModes(t *testing.T) {
	cases := []struct {
		in   []string
		want CreateMode
	}{
		{nil, CreateMode{Persistence: Persistent}},
		{[]string{"persistent"}, CreateMode{Persistence: Persistent}},
		{[]string{"ephemeral"}, CreateMode{Persistence: Ephemeral}},
		{[]string{"sequential"}, CreateMode{Persistence: Persistent, Sequential: true}},
		{[]string{"ephemeral", "sequential"}, CreateMode{Persistence: Ephemeral, Sequential: true}},
		{[]string{"Ephemeral,Sequential"}, CreateMode{Persistence: Ephemeral, Sequential: true}},
	}
	for _, tc := range cases {
		got, err := ParseModes(tc.in)
		if err != nil {
			t.Fatalf("ParseModes(%v) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseModes(%v): got %+v want %+v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseModes([]string{"persistent", "ephemeral"}); err == nil {
		t.Fatal("expected error combining persistent and ephemeral")
	}
	if _, err := ParseModes([]string{"container"}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestCreateFlags(t *testing.T) {
	if got := createFlags(CreateMode{Persistence: Ephemeral, Sequential: true}); got != int32(zk.FlagEphemeral)|int32(zk.FlagSequence) {
		t.Fatalf("unexpected flags: %d", got)
	}
	if got := createFlags(CreateMode{}); got != 0 {
		t.Fatalf("unexpected persistent flags: %d", got)
	}
}

func TestPerms(t *testing.T) {
	perms, err := ParsePerms("rw")
	if err != nil {
		t.Fatalf("ParsePerms returned error: %v", err)
	}
	if perms != PermRead|PermWrite {
		t.Fatalf("unexpected perms: %d", perms)
	}
	if got := FormatPerms(perms); got != "rw---" {
		t.Fatalf("unexpected format: %q", got)
	}
	if all, _ := ParsePerms("all"); all != PermAll || all != int32(zk.PermAll) {
		t.Fatalf("unexpected all perms: %d", all)
	}
	if _, err := ParsePerms("rx"); err == nil {
		t.Fatal("expected error for unknown permission letter")
	}
}

func TestConvertStat(t *testing.T) {
	got := convertStat(&zk.Stat{Version: 3, EphemeralOwner: 42, NumChildren: 2, DataLength: 5, Mtime: 1_700_000_000_000})
	if got.Version != 3 || !got.Ephemeral() || got.NumChildren != 2 || got.DataLength != 5 {
		t.Fatalf("unexpected stat: %+v", got)
	}
	if !got.Mtime.Equal(time.UnixMilli(1_700_000_000_000)) {
		t.Fatalf("unexpected mtime: %v", got.Mtime)
	}
	if got.Persistence() != Ephemeral {
		t.Fatalf("unexpected persistence: %v", got.Persistence())
	}
	if (convertStat(nil) != Stat{}) {
		t.Fatal("expected zero stat for nil")
	}
}

func TestAwaitReturnsOnInterrupt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stuck := make(chan struct{})
	defer close(stuck)

	result := make(chan error, 1)
	go func() {
		_, err := await(ctx, "children", zpath.MustNormalize("/a"), func() ([]string, error) {
			<-stuck
			return nil, nil
		})
		result <- err
	}()
	cancel()

	select {
	case err := <-result:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected cancellation, got %v", err)
		}
		if errors.Is(err, zkerr.ErrIO) {
			t.Fatalf("interrupt must not be reported as an IO error: %v", err)
		}
		if got := zkerr.ExitCode(err); got != zkerr.ExitInterrupted {
			t.Fatalf("exit code: got %d want %d", got, zkerr.ExitInterrupted)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("await still blocked after interrupt")
	}
}

func TestAwaitPassesThroughResult(t *testing.T) {
	got, err := await(context.Background(), "exists", zpath.MustNormalize("/a"), func() (bool, error) {
		return true, nil
	})
	if err != nil || !got {
		t.Fatalf("await: got (%v, %v) want (true, nil)", got, err)
	}

	_, err = await(context.Background(), "get", zpath.MustNormalize("/a"), func() (int, error) {
		return 0, translate("get", zpath.MustNormalize("/a"), zk.ErrNoNode)
	})
	if !errors.Is(err, zkerr.ErrNodeNotFound) {
		t.Fatalf("expected NodeNotFound, got %v", err)
	}
}
