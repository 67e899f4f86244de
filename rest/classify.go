package rest

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	stderrors "errors"
	"io"
	"net"
	"strings"

	"github.com/kochabx/avatax/errors"
)

// transportCode maps an error returned by the HTTP client onto a transport code.
func transportCode(err error) errors.TransportCode {
	switch {
	case stderrors.Is(err, context.Canceled):
		return errors.TransportAborted
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.TransportTimedOut
	}

	var (
		verifyErr   *tls.CertificateVerificationError
		unknownAuth x509.UnknownAuthorityError
		invalidCert x509.CertificateInvalidError
		hostnameErr x509.HostnameError
		dnsErr      *net.DNSError
		netErr      net.Error
		opErr       *net.OpError
	)

	switch {
	case stderrors.As(err, &verifyErr),
		stderrors.As(err, &unknownAuth),
		stderrors.As(err, &invalidCert),
		stderrors.As(err, &hostnameErr):
		return errors.TransportPeerVerification
	case stderrors.As(err, &dnsErr):
		if stderrors.As(err, &opErr) && opErr.Op == "proxyconnect" {
			return errors.TransportProxyResolve
		}
		return errors.TransportHostResolve
	case stderrors.As(err, &netErr) && netErr.Timeout():
		return errors.TransportTimedOut
	case stderrors.As(err, &opErr):
		switch opErr.Op {
		case "dial", "proxyconnect":
			return errors.TransportConnect
		case "read":
			return errors.TransportReceive
		case "write":
			return errors.TransportSend
		case "remote error":
			return errors.TransportTLSConnect
		}
	case stderrors.Is(err, io.EOF), stderrors.Is(err, io.ErrUnexpectedEOF):
		return errors.TransportGotNothing
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "unsupported protocol scheme"):
		return errors.TransportUnsupportedProtocol
	case strings.Contains(msg, "server gave HTTP response to HTTPS client"):
		return errors.TransportTLSConnect
	}
	return errors.TransportUnknown
}

func newTransportError(code errors.TransportCode, method, url string, err error) *errors.TransportError {
	return &errors.TransportError{
		Code:    code,
		Message: code.String(),
		Method:  method,
		URL:     url,
		Err:     err,
	}
}
