package notifier

import "errors"

var (
	ErrUnknownNotifier  = errors.New("unknown notifier kind")
	ErrDeliveryFailed   = errors.New("notification delivery failed")
	ErrEncodingFailed   = errors.New("notification encoding failed")
	ErrNotifierIsClosed = errors.New("notifier is closed")
)
