// Package checkout turns a cart into an order message and a deep link.
//
// Checkout favors availability over durability. Once a cart is ready, the
// summary is composed, the link is opened and the cart is cleared no matter
// what the backend does. Persisting the order and decrementing stock are
// best effort: failures are logged and reported in Result, never returned.
//
// Stock decrements are issued concurrently, one per line, and all of them
// settle before the cart is cleared. Neither the order insert nor the
// decrements are exactly-once; a retried checkout writes a second order.
package checkout
