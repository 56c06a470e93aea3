package httpserver

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/zaz600/go-shortener-cli/internal/pkg/cert"
)

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (c net.Conn, err error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return
	}
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(3 * time.Minute)
	return tc, nil
}

// ListenTLS открывает TLS listener на address с переданным сертификатом
func ListenTLS(address string, certificate tls.Certificate) (net.Listener, error) {
	tlsConfig := &tls.Config{
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"http/1.1"},
		Certificates: []tls.Certificate{certificate},
	}

	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}
	return tls.NewListener(tcpKeepAliveListener{ln.(*net.TCPListener)}, tlsConfig), nil
}

// ListenAndServeTLS запускает server на address с самоподписанным сертификатом
func ListenAndServeTLS(server *http.Server, address string) error {
	certificate, err := cert.New()
	if err != nil {
		return err
	}
	ln, err := ListenTLS(address, certificate)
	if err != nil {
		return err
	}
	return server.Serve(ln)
}
