package errors

// TransportCode identifies a transport failure. The numbering follows
// libcurl's error codes so logs stay comparable with other tax API clients.
type TransportCode int

const (
	TransportUnknown             TransportCode = 0
	TransportUnsupportedProtocol TransportCode = 1
	TransportMalformedURL        TransportCode = 3
	TransportProxyResolve        TransportCode = 5
	TransportHostResolve         TransportCode = 6
	TransportConnect             TransportCode = 7
	TransportTimedOut            TransportCode = 28
	TransportTLSConnect          TransportCode = 35
	TransportAborted             TransportCode = 42
	TransportGotNothing          TransportCode = 52
	TransportSend                TransportCode = 55
	TransportReceive             TransportCode = 56
	TransportPeerVerification    TransportCode = 60
	TransportCACertBadFile       TransportCode = 77
)

var transportMessages = map[TransportCode]string{
	TransportUnknown:             "Unknown error",
	TransportUnsupportedProtocol: "Unsupported protocol",
	TransportMalformedURL:        "URL using bad/illegal format or missing URL",
	TransportProxyResolve:        "Couldn't resolve proxy name",
	TransportHostResolve:         "Couldn't resolve host name",
	TransportConnect:             "Couldn't connect to server",
	TransportTimedOut:            "Timeout was reached",
	TransportTLSConnect:          "SSL connect error",
	TransportAborted:             "Operation was aborted by an application callback",
	TransportGotNothing:          "Server returned nothing (no headers, no data)",
	TransportSend:                "Failed sending data to the peer",
	TransportReceive:             "Failure when receiving data from the peer",
	TransportPeerVerification:    "SSL peer certificate or SSH remote key was not OK",
	TransportCACertBadFile:       "Problem with the SSL CA cert (path? access rights?)",
}

// String returns the fixed description of the code.
func (c TransportCode) String() string {
	if msg, ok := transportMessages[c]; ok {
		return msg
	}
	return transportMessages[TransportUnknown]
}
