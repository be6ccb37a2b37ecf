package outbox

import (
	"fmt"

	"foodorder/internal/pkg/errs"
)

// Kind names the side effect a message stands for.
type Kind string

const (
	KindCreateDelivery   Kind = "create_delivery"
	KindCancelDelivery   Kind = "cancel_delivery"
	KindAdvanceDelivery  Kind = "advance_delivery"
	KindNotifyRestaurant Kind = "notify_restaurant"
	KindNotifyCustomer   Kind = "notify_customer"
	KindPublishEvent     Kind = "publish_event"
)

var allKinds = []Kind{
	KindCreateDelivery,
	KindCancelDelivery,
	KindAdvanceDelivery,
	KindNotifyRestaurant,
	KindNotifyCustomer,
	KindPublishEvent,
}

// DeliveryKinds are the ledger side effects, retried by reconciliation.
func DeliveryKinds() []Kind {
	return []Kind{KindCreateDelivery, KindCancelDelivery, KindAdvanceDelivery}
}

// NotificationKinds are advisory side effects, delivered by the relay.
func NotificationKinds() []Kind {
	return []Kind{KindNotifyRestaurant, KindNotifyCustomer, KindPublishEvent}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

func (k Kind) Validate() error {
	for _, known := range allKinds {
		if k == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("outbox kind", fmt.Errorf("%q is not a known kind", string(k)))
}

// IsRequired reports whether a failure of this side effect must be reported to the
// caller of the order change that produced it.
func (k Kind) IsRequired() bool {
	return k == KindCreateDelivery || k == KindCancelDelivery
}

func (k Kind) String() string {
	return string(k)
}
