// Package dispatcher is the client of the notification dispatcher.
package dispatcher

import (
	"context"
	"net/http"

	"foodorder/internal/adapters/out/httpclient"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
)

// Client implements ports.Notifier.
type Client struct {
	http *httpclient.Client
}

var _ ports.Notifier = (*Client)(nil)

func NewClient(c *httpclient.Client) *Client {
	return &Client{http: c}
}

type restaurantNotification struct {
	RestaurantID kernel.ID `json:"restaurant_id"`
	RecipientID  kernel.ID `json:"recipient_id"`
	Message      string    `json:"message"`
}

type userNotification struct {
	UserID  kernel.ID `json:"user_id"`
	Message string    `json:"message"`
}

// NotifyRestaurant calls POST /notify/restaurant.
func (c *Client) NotifyRestaurant(ctx context.Context, restaurantID, recipientID kernel.ID, message string) error {
	return c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/notify/restaurant",
		Body: restaurantNotification{
			RestaurantID: restaurantID,
			RecipientID:  recipientID,
			Message:      message,
		},
		Resource: "restaurant channel",
		ID:       restaurantID,
	}, nil)
}

// NotifyUser calls POST /notify/user.
func (c *Client) NotifyUser(ctx context.Context, userID kernel.ID, message string) error {
	return c.http.Do(ctx, httpclient.Request{
		Method:   http.MethodPost,
		Path:     "/notify/user",
		Body:     userNotification{UserID: userID, Message: message},
		Resource: "user channel",
		ID:       userID,
	}, nil)
}
