package remote

import "strings"

type errorClass int

const (
	classTransient errorClass = iota
	classPermanent
)

// permanentMarkers are handshake error fragments that indicate a credential
// rejection. golang.org/x/crypto/ssh does not export a typed client-side
// auth error, so the mapping is on the error text. New transport error
// shapes get added here, not in the retry loop.
var permanentMarkers = []string{
	"unable to authenticate",
	"permission denied",
	"no supported methods remain",
}

// classify decides whether a failed connection attempt may succeed if
// retried.
func classify(err error) errorClass {
	if err == nil {
		return classTransient
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range permanentMarkers {
		if strings.Contains(msg, marker) {
			return classPermanent
		}
	}
	return classTransient
}
