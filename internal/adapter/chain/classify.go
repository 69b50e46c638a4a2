package chain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrTxNotFound is returned by ledger lookups when no transaction has the id.
var ErrTxNotFound = errors.New("transaction not found")

// StatusError carries the HTTP status of a failed ledger RPC call.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ledger http %d: %v", e.Code, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

var ambiguousPhrases = []string{
	"timeout",
	"timed out",
	"deadline exceeded",
	"bad gateway",
	"gateway time",
	"service unavailable",
}

// IsAmbiguous reports whether a broadcast failure leaves it unknown if the
// ledger accepted the payload: timeouts and 5xx/408 responses.
func IsAmbiguous(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusRequestTimeout || statusErr.Code >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range ambiguousPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

// NeverSent reports whether err proves the payload never reached the ledger,
// such as a refused connection.
func NeverSent(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
