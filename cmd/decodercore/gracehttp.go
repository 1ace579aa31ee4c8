package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// HttpServer wraps an http.Server with the same
// listen-then-wait-for-shutdown-signal shape the teacher uses for its
// pprof/whitelist endpoint, reused here for the health-check and
// dictionary-inspection endpoints.
type HttpServer struct {
	Server   *http.Server
	shutdown chan struct{}
}

// reusableListenConfig sets SO_REUSEADDR/SO_REUSEPORT on the listening
// socket, exactly as the teacher's initInterface does for its UDP
// server, so a restart of this process does not have to wait out
// TIME_WAIT on the health/inspection port.
var reusableListenConfig = net.ListenConfig{
	Control: func(network, address string, c syscall.RawConn) error {
		return c.Control(func(fd uintptr) {
			syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, unix.SO_REUSEPORT, 1)
		})
	},
}

func (s *HttpServer) ListenAndServe() error {
	if s.shutdown == nil {
		s.shutdown = make(chan struct{})
	}

	ln, err := reusableListenConfig.Listen(context.Background(), "tcp", s.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Server.Addr, err)
	}

	err = s.Server.Serve(ln)
	if err == http.ErrServerClosed {
		err = nil
	} else if err != nil {
		return fmt.Errorf("unexpected error from Serve: %w", err)
	}

	log.Debugln("waiting for shutdown finishing...")
	<-s.shutdown
	log.Debugln("shutdown finished")

	return err
}

func (s *HttpServer) Shutdown(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Server.Shutdown(ctx); err != nil {
		log.Errorln("shutting down: " + err.Error())
		return
	}

	log.Debugln("shutdown processed successfully")
	if s.shutdown != nil {
		close(s.shutdown)
	}
}
